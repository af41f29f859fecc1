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

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Find(ctx context.Context, filter bson.M) ([]models.Blog, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type blogRepository struct {
	db database.Service
}

func NewBlogRepository(db database.Service) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) collection() *mongo.Collection {
	return r.db.Database().Collection("blogs")
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	queryType := "create"
	repository := "blog"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	_, err := r.collection().InsertOne(ctx, blog)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return blog, nil
}

func (r *blogRepository) Find(ctx context.Context, filter bson.M) ([]models.Blog, error) {
	queryType := "find"
	repository := "blog"
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
		return nil, fmt.Errorf("failed to retrieve blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding blogs: %w", err)
	}
	return blogs, nil
}

func (r *blogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	queryType := "findById"
	repository := "blog"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var blog models.Blog
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &blog, nil
}

func (r *blogRepository) UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	queryType := "update"
	repository := "blog"
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
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return result, nil
}

func (r *blogRepository) DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	queryType := "delete"
	repository := "blog"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to delete blog: %w", err)
	}
	return result, nil
}
