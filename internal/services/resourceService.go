package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cybershield/internal/metrics"
	"cybershield/internal/models"
	"cybershield/internal/repositories"
)

type CreateResourceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Link        string `json:"link"`
	ImageURL    string `json:"imageUrl"`
}

// ResourceService handles the educational resource library. Updates and
// deletes are allowed for the uploader or an admin.
type ResourceService interface {
	GetResources(ctx context.Context) ([]models.Resource, error)
	GetResourceByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error)
	CreateResource(ctx context.Context, uploader *models.User, input CreateResourceInput) (*models.Resource, error)
	UpdateResource(ctx context.Context, actor *models.User, id primitive.ObjectID, update models.ResourceUpdate) (*models.Resource, error)
	DeleteResource(ctx context.Context, actor *models.User, id primitive.ObjectID) error
}

type resourceService struct {
	resourceRepo repositories.ResourceRepository
}

func NewResourceService(resourceRepo repositories.ResourceRepository) ResourceService {
	return &resourceService{resourceRepo: resourceRepo}
}

func (s *resourceService) GetResources(ctx context.Context) ([]models.Resource, error) {
	return s.resourceRepo.Find(ctx, bson.M{})
}

func (s *resourceService) GetResourceByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch resource: %w", err)
	}
	return resource, nil
}

func (s *resourceService) CreateResource(ctx context.Context, uploader *models.User, input CreateResourceInput) (*models.Resource, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Link) == "" {
		return nil, fmt.Errorf("%w: title and link are required", ErrMissingFields)
	}

	category := input.Category
	if category == "" {
		category = "Other"
	}
	if !models.ValidResourceCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrMissingFields, category)
	}

	resource := &models.Resource{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		Link:        strings.TrimSpace(input.Link),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		UploadedBy:  uploader.ID,
	}

	created, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		return nil, err
	}

	metrics.ResourceCreatedTotal.Inc()
	log.Info().Str("resource_id", created.ID.Hex()).Str("user_id", uploader.ID.Hex()).Msg("Resource created")
	return created, nil
}

func canModifyResource(actor *models.User, resource *models.Resource) bool {
	return resource.UploadedBy == actor.ID || actor.Role == models.RoleAdmin
}

func (s *resourceService) UpdateResource(ctx context.Context, actor *models.User, id primitive.ObjectID, update models.ResourceUpdate) (*models.Resource, error) {
	resource, err := s.GetResourceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModifyResource(actor, resource) {
		return nil, ErrForbidden
	}

	updateFields := bson.M{}
	if update.Title != nil {
		updateFields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		updateFields["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Category != nil {
		if !models.ValidResourceCategory(*update.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrMissingFields, *update.Category)
		}
		updateFields["category"] = *update.Category
	}
	if update.Link != nil {
		updateFields["link"] = strings.TrimSpace(*update.Link)
	}
	if update.ImageURL != nil && strings.TrimSpace(*update.ImageURL) != "" {
		updateFields["image_url"] = strings.TrimSpace(*update.ImageURL)
	}

	if len(updateFields) == 0 {
		return nil, ErrMissingFields
	}

	if _, err := s.resourceRepo.UpdateOne(ctx, id, updateFields); err != nil {
		return nil, err
	}
	return s.GetResourceByID(ctx, id)
}

func (s *resourceService) DeleteResource(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	resource, err := s.GetResourceByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModifyResource(actor, resource) {
		return ErrForbidden
	}

	if _, err := s.resourceRepo.DeleteOne(ctx, id); err != nil {
		return err
	}
	log.Info().Str("resource_id", id.Hex()).Str("user_id", actor.ID.Hex()).Msg("Resource deleted")
	return nil
}
