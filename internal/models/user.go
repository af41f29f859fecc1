package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleGeneral  = "general"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleGeneral || role == RoleBusiness || role == RoleAdmin
}

// User is one account record. The verify/reset OTP slots live on the record
// itself: each slot holds at most one active code, and generating a new code
// overwrites the previous one.
type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Role     string             `json:"role" bson:"role"`

	// Business profile, set only while Role == "business".
	BusinessName    string `json:"businessName,omitempty" bson:"business_name,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty" bson:"business_address,omitempty"`
	BusinessAbn     string `json:"businessAbn,omitempty" bson:"business_abn,omitempty"`

	IsAccountVerified bool      `json:"isAccountVerified" bson:"is_account_verified"`
	VerifyOtp         string    `json:"-" bson:"verify_otp"`
	VerifyOtpExpireAt time.Time `json:"-" bson:"verify_otp_expire_at,omitempty"`
	ResetOtp          string    `json:"-" bson:"reset_otp"`
	ResetOtpExpireAt  time.Time `json:"-" bson:"reset_otp_expire_at,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type UserProfileUpdate struct {
	Name            string  `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Role            string  `json:"role,omitempty"`
	BusinessName    string  `json:"businessName,omitempty"`
	BusinessAddress string  `json:"businessAddress,omitempty"`
	BusinessAbn     string  `json:"businessAbn,omitempty"`
}
