package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cybershield/internal/database"
	"cybershield/internal/models"
	"cybershield/internal/utils"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	Find(ctx context.Context, filter bson.M) ([]models.Campaign, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type campaignRepository struct {
	db database.Service
}

func NewCampaignRepository(db database.Service) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) collection() *mongo.Collection {
	return r.db.Database().Collection("campaigns")
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	queryType := "create"
	repository := "campaign"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt
	_, err := r.collection().InsertOne(ctx, campaign)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

func (r *campaignRepository) Find(ctx context.Context, filter bson.M) ([]models.Campaign, error) {
	queryType := "find"
	repository := "campaign"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to retrieve campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *campaignRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	queryType := "findById"
	repository := "campaign"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var campaign models.Campaign
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &campaign, nil
}

func (r *campaignRepository) UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	queryType := "update"
	repository := "campaign"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	updateFields["updated_at"] = time.Now()
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateFields})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return result, nil
}

func (r *campaignRepository) DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	queryType := "delete"
	repository := "campaign"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to delete campaign: %w", err)
	}
	return result, nil
}
