package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BlogStatusPending  = "pending"
	BlogStatusApproved = "approved"
	BlogStatusArchived = "archived"
)

func ValidBlogStatus(status string) bool {
	return status == BlogStatusPending || status == BlogStatusApproved || status == BlogStatusArchived
}

type Blog struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	ImageURL  string             `json:"imageUrl" bson:"image_url"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type BlogUpdate struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Status   *string `json:"status,omitempty"`
}
