package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CampaignStatusPending  = "pending"
	CampaignStatusActive   = "active"
	CampaignStatusArchived = "archived"
)

func ValidCampaignStatus(status string) bool {
	return status == CampaignStatusPending || status == CampaignStatusActive || status == CampaignStatusArchived
}

// Campaign is an awareness campaign published by a business account. The
// creator's business name is denormalized onto the record at creation time.
type Campaign struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	ImageURL     string             `json:"imageUrl" bson:"image_url"`
	CreatedBy    primitive.ObjectID `json:"createdBy" bson:"created_by"`
	BusinessName string             `json:"businessName" bson:"business_name"`
	StartTime    time.Time          `json:"startTime" bson:"start_time"`
	EndTime      time.Time          `json:"endTime" bson:"end_time"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

type CampaignUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Status      *string `json:"status,omitempty"`
}
