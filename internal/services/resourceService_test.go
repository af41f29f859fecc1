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

type fakeResourceRepo struct {
	resources map[primitive.ObjectID]*models.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: make(map[primitive.ObjectID]*models.Resource)}
}

func (r *fakeResourceRepo) Create(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	resource.ID = primitive.NewObjectID()
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = resource.CreatedAt
	clone := *resource
	r.resources[resource.ID] = &clone
	return resource, nil
}

func (r *fakeResourceRepo) Find(ctx context.Context, filter bson.M) ([]models.Resource, error) {
	var out []models.Resource
	for _, res := range r.resources {
		out = append(out, *res)
	}
	return out, nil
}

func (r *fakeResourceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *res
	return &clone, nil
}

func (r *fakeResourceRepo) UpdateOne(ctx context.Context, id primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	res, ok := r.resources[id]
	if !ok {
		return &mongo.UpdateResult{MatchedCount: 0}, nil
	}
	for key, value := range updateFields {
		switch key {
		case "title":
			res.Title = value.(string)
		case "description":
			res.Description = value.(string)
		case "category":
			res.Category = value.(string)
		case "link":
			res.Link = value.(string)
		case "image_url":
			res.ImageURL = value.(string)
		}
	}
	res.UpdatedAt = time.Now()
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeResourceRepo) DeleteOne(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	if _, ok := r.resources[id]; !ok {
		return &mongo.DeleteResult{DeletedCount: 0}, nil
	}
	delete(r.resources, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func TestCreateResource(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewResourceService(repo)
	uploader := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Role: models.RoleGeneral}

	t.Run("defaults the category to Other", func(t *testing.T) {
		resource, err := svc.CreateResource(context.Background(), uploader, CreateResourceInput{
			Title: "Password managers 101",
			Link:  "https://example.com/passwords",
		})
		require.NoError(t, err)
		assert.Equal(t, "Other", resource.Category)
		assert.Equal(t, uploader.ID, resource.UploadedBy)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		_, err := svc.CreateResource(context.Background(), uploader, CreateResourceInput{
			Title:    "Bad category",
			Link:     "https://example.com",
			Category: "Cryptography",
		})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("requires title and link", func(t *testing.T) {
		_, err := svc.CreateResource(context.Background(), uploader, CreateResourceInput{Title: "No link"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestResourceUploaderOrAdmin(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewResourceService(repo)
	uploader := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Role: models.RoleGeneral}
	stranger := &models.User{ID: primitive.NewObjectID(), Name: "Eve", Role: models.RoleGeneral}
	admin := &models.User{ID: primitive.NewObjectID(), Name: "Root", Role: models.RoleAdmin}

	resource, err := svc.CreateResource(context.Background(), uploader, CreateResourceInput{
		Title:    "Spotting phishing emails",
		Link:     "https://example.com/phishing",
		Category: "Phishing",
	})
	require.NoError(t, err)

	title := "Updated title"

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := svc.UpdateResource(context.Background(), stranger, resource.ID, models.ResourceUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, svc.DeleteResource(context.Background(), stranger, resource.ID), ErrForbidden)
	})

	t.Run("uploader may update", func(t *testing.T) {
		updated, err := svc.UpdateResource(context.Background(), uploader, resource.ID, models.ResourceUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Updated title", updated.Title)
	})

	t.Run("admin may moderate without being the uploader", func(t *testing.T) {
		require.NoError(t, svc.DeleteResource(context.Background(), admin, resource.ID))
		_, err := svc.GetResourceByID(context.Background(), resource.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
