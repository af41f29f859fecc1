package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var resourceCategories = map[string]bool{
	"Phishing":           true,
	"Passwords":          true,
	"Social Engineering": true,
	"Malware":            true,
	"Other":              true,
}

func ValidResourceCategory(category string) bool {
	return resourceCategories[category]
}

// Resource is an educational link shared by a user, public to read.
type Resource struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Link        string             `json:"link" bson:"link"`
	ImageURL    string             `json:"imageUrl" bson:"image_url"`
	UploadedBy  primitive.ObjectID `json:"uploadedBy" bson:"uploaded_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type ResourceUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Link        *string `json:"link,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}
