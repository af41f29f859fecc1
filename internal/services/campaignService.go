package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cybershield/internal/metrics"
	"cybershield/internal/models"
	"cybershield/internal/repositories"
)

type CreateCampaignInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	ImageURL    string `json:"imageUrl"`
}

// CampaignService handles awareness campaign CRUD. Reads are public; writes
// require the creator, except the moderation methods which the admin role
// gate protects at the routing layer.
type CampaignService interface {
	GetCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetPendingCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	CreateCampaign(ctx context.Context, creator *models.User, input CreateCampaignInput) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, actor *models.User, id primitive.ObjectID, update models.CampaignUpdate) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	SetCampaignStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Campaign, error)
}

type campaignService struct {
	campaignRepo repositories.CampaignRepository
}

func NewCampaignService(campaignRepo repositories.CampaignRepository) CampaignService {
	return &campaignService{campaignRepo: campaignRepo}
}

func (s *campaignService) GetCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.campaignRepo.Find(ctx, bson.M{})
}

func (s *campaignService) GetPendingCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.campaignRepo.Find(ctx, bson.M{"status": models.CampaignStatusPending})
}

func (s *campaignService) GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) CreateCampaign(ctx context.Context, creator *models.User, input CreateCampaignInput) (*models.Campaign, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" ||
		input.StartTime == "" || input.EndTime == "" {
		return nil, fmt.Errorf("%w: title, description, startTime and endTime are required", ErrMissingFields)
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, fmt.Errorf("%w: either upload an image or provide an imageUrl", ErrMissingFields)
	}

	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be RFC 3339", ErrMissingFields)
	}
	endTime, err := time.Parse(time.RFC3339, input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime must be RFC 3339", ErrMissingFields)
	}

	businessName := creator.BusinessName
	if businessName == "" {
		businessName = creator.Name
	}

	campaign := &models.Campaign{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		CreatedBy:    creator.ID,
		BusinessName: strings.TrimSpace(businessName),
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       models.CampaignStatusPending,
	}

	created, err := s.campaignRepo.Create(ctx, campaign)
	if err != nil {
		return nil, err
	}

	metrics.CampaignCreatedTotal.Inc()
	log.Info().Str("campaign_id", created.ID.Hex()).Str("user_id", creator.ID.Hex()).Msg("Campaign created")
	return created, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, actor *models.User, id primitive.ObjectID, update models.CampaignUpdate) (*models.Campaign, error) {
	campaign, err := s.GetCampaignByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.CreatedBy != actor.ID {
		return nil, ErrForbidden
	}

	updateFields := bson.M{}
	if update.Title != nil {
		updateFields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		updateFields["description"] = strings.TrimSpace(*update.Description)
	}
	if update.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *update.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime must be RFC 3339", ErrMissingFields)
		}
		updateFields["start_time"] = startTime
	}
	if update.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *update.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime must be RFC 3339", ErrMissingFields)
		}
		updateFields["end_time"] = endTime
	}
	if update.Status != nil && models.ValidCampaignStatus(*update.Status) {
		updateFields["status"] = *update.Status
	}
	if update.ImageURL != nil && strings.TrimSpace(*update.ImageURL) != "" {
		updateFields["image_url"] = strings.TrimSpace(*update.ImageURL)
	}

	if len(updateFields) == 0 {
		return nil, ErrMissingFields
	}

	if _, err := s.campaignRepo.UpdateOne(ctx, id, updateFields); err != nil {
		return nil, err
	}
	return s.GetCampaignByID(ctx, id)
}

func (s *campaignService) DeleteCampaign(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	campaign, err := s.GetCampaignByID(ctx, id)
	if err != nil {
		return err
	}
	if campaign.CreatedBy != actor.ID {
		return ErrForbidden
	}

	if _, err := s.campaignRepo.DeleteOne(ctx, id); err != nil {
		return err
	}
	log.Info().Str("campaign_id", id.Hex()).Str("user_id", actor.ID.Hex()).Msg("Campaign deleted")
	return nil
}

// SetCampaignStatus is the moderation hook; routing restricts it to admins.
func (s *campaignService) SetCampaignStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Campaign, error) {
	if !models.ValidCampaignStatus(status) {
		return nil, fmt.Errorf("%w: unknown campaign status %q", ErrMissingFields, status)
	}

	if _, err := s.GetCampaignByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.campaignRepo.UpdateOne(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	return s.GetCampaignByID(ctx, id)
}
