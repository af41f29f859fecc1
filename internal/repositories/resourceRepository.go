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

type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) (*models.Resource, error)
	Find(ctx context.Context, filter bson.M) ([]models.Resource, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type resourceRepository struct {
	db database.Service
}

func NewResourceRepository(db database.Service) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) collection() *mongo.Collection {
	return r.db.Database().Collection("resources")
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	queryType := "create"
	repository := "resource"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	resource.ID = primitive.NewObjectID()
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = resource.CreatedAt
	_, err := r.collection().InsertOne(ctx, resource)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, nil
}

func (r *resourceRepository) Find(ctx context.Context, filter bson.M) ([]models.Resource, error) {
	queryType := "find"
	repository := "resource"
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
		return nil, fmt.Errorf("failed to retrieve resources: %w", err)
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding resources: %w", err)
	}
	return resources, nil
}

func (r *resourceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	queryType := "findById"
	repository := "resource"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var resource models.Resource
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&resource)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &resource, nil
}

func (r *resourceRepository) UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	queryType := "update"
	repository := "resource"
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
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return result, nil
}

func (r *resourceRepository) DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	queryType := "delete"
	repository := "resource"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to delete resource: %w", err)
	}
	return result, nil
}
