package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cybershield/internal/models"
)

type fakeCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[primitive.ObjectID]*models.Campaign)}
}

func (r *fakeCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt
	clone := *campaign
	r.campaigns[campaign.ID] = &clone
	return campaign, nil
}

func (r *fakeCampaignRepo) Find(ctx context.Context, filter bson.M) ([]models.Campaign, error) {
	var out []models.Campaign
	status, filtered := filter["status"].(string)
	for _, c := range r.campaigns {
		if filtered && c.Status != status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCampaignRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCampaignRepo) UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return &mongo.UpdateResult{MatchedCount: 0}, nil
	}
	for key, value := range updateFields {
		switch key {
		case "title":
			c.Title = value.(string)
		case "description":
			c.Description = value.(string)
		case "image_url":
			c.ImageURL = value.(string)
		case "status":
			c.Status = value.(string)
		case "start_time":
			c.StartTime = value.(time.Time)
		case "end_time":
			c.EndTime = value.(time.Time)
		}
	}
	c.UpdatedAt = time.Now()
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeCampaignRepo) DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	if _, ok := r.campaigns[id]; !ok {
		return &mongo.DeleteResult{DeletedCount: 0}, nil
	}
	delete(r.campaigns, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func businessUser() *models.User {
	return &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Bob",
		Email:        "bob@example.com",
		Role:         models.RoleBusiness,
		BusinessName: "Bob Security Pty Ltd",
	}
}

func validCampaignInput() CreateCampaignInput {
	return CreateCampaignInput{
		Title:       "Phishing Awareness Week",
		Description: "Spot the hook before it lands.",
		StartTime:   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		EndTime:     time.Now().Add(7 * 24 * time.Hour).Format(time.RFC3339),
		ImageURL:    "/uploads/phishing.png",
	}
}

func TestCreateCampaign(t *testing.T) {
	t.Run("new campaigns start pending with the creator's business name", func(t *testing.T) {
		repo := newFakeCampaignRepo()
		svc := NewCampaignService(repo)
		creator := businessUser()

		campaign, err := svc.CreateCampaign(context.Background(), creator, validCampaignInput())
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusPending, campaign.Status)
		assert.Equal(t, creator.ID, campaign.CreatedBy)
		assert.Equal(t, "Bob Security Pty Ltd", campaign.BusinessName)
	})

	t.Run("falls back to the account name when there is no business name", func(t *testing.T) {
		repo := newFakeCampaignRepo()
		svc := NewCampaignService(repo)
		creator := businessUser()
		creator.BusinessName = ""

		campaign, err := svc.CreateCampaign(context.Background(), creator, validCampaignInput())
		require.NoError(t, err)
		assert.Equal(t, "Bob", campaign.BusinessName)
	})

	t.Run("rejects missing fields and bad timestamps", func(t *testing.T) {
		repo := newFakeCampaignRepo()
		svc := NewCampaignService(repo)
		creator := businessUser()

		input := validCampaignInput()
		input.Title = " "
		_, err := svc.CreateCampaign(context.Background(), creator, input)
		assert.ErrorIs(t, err, ErrMissingFields)

		input = validCampaignInput()
		input.StartTime = "next tuesday"
		_, err = svc.CreateCampaign(context.Background(), creator, input)
		assert.ErrorIs(t, err, ErrMissingFields)

		input = validCampaignInput()
		input.ImageURL = ""
		_, err = svc.CreateCampaign(context.Background(), creator, input)
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestUpdateCampaign(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := NewCampaignService(repo)
	creator := businessUser()

	campaign, err := svc.CreateCampaign(context.Background(), creator, validCampaignInput())
	require.NoError(t, err)

	t.Run("only the creator may update", func(t *testing.T) {
		other := businessUser()
		title := "Hijacked"
		_, err := svc.UpdateCampaign(context.Background(), other, campaign.ID, models.CampaignUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("partial update", func(t *testing.T) {
		title := "Phishing Awareness Month"
		updated, err := svc.UpdateCampaign(context.Background(), creator, campaign.ID, models.CampaignUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Phishing Awareness Month", updated.Title)
		assert.Equal(t, campaign.Description, updated.Description)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := svc.UpdateCampaign(context.Background(), creator, campaign.ID, models.CampaignUpdate{})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		title := "Ghost"
		_, err := svc.UpdateCampaign(context.Background(), creator, primitive.NewObjectID(), models.CampaignUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteCampaign(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := NewCampaignService(repo)
	creator := businessUser()

	campaign, err := svc.CreateCampaign(context.Background(), creator, validCampaignInput())
	require.NoError(t, err)

	other := businessUser()
	assert.ErrorIs(t, svc.DeleteCampaign(context.Background(), other, campaign.ID), ErrForbidden)

	require.NoError(t, svc.DeleteCampaign(context.Background(), creator, campaign.ID))
	assert.ErrorIs(t, svc.DeleteCampaign(context.Background(), creator, campaign.ID), ErrNotFound)
}

func TestSetCampaignStatus(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := NewCampaignService(repo)
	creator := businessUser()

	campaign, err := svc.CreateCampaign(context.Background(), creator, validCampaignInput())
	require.NoError(t, err)

	updated, err := svc.SetCampaignStatus(context.Background(), campaign.ID, models.CampaignStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, updated.Status)

	pending, err := svc.GetPendingCampaigns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.SetCampaignStatus(context.Background(), campaign.ID, "celebrated")
	assert.ErrorIs(t, err, ErrMissingFields)
}
