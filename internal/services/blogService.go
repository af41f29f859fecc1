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

type CreateBlogInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

type BlogService interface {
	GetBlogs(ctx context.Context) ([]models.Blog, error)
	GetPendingBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlogByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	CreateBlog(ctx context.Context, author *models.User, input CreateBlogInput) (*models.Blog, error)
	UpdateBlog(ctx context.Context, actor *models.User, id primitive.ObjectID, update models.BlogUpdate) (*models.Blog, error)
	DeleteBlog(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	SetBlogStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Blog, error)
}

type blogService struct {
	blogRepo repositories.BlogRepository
}

func NewBlogService(blogRepo repositories.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	return s.blogRepo.Find(ctx, bson.M{})
}

func (s *blogService) GetPendingBlogs(ctx context.Context) ([]models.Blog, error) {
	return s.blogRepo.Find(ctx, bson.M{"status": models.BlogStatusPending})
}

func (s *blogService) GetBlogByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch blog: %w", err)
	}
	return blog, nil
}

func (s *blogService) CreateBlog(ctx context.Context, author *models.User, input CreateBlogInput) (*models.Blog, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrMissingFields)
	}

	blog := &models.Blog{
		Title:    strings.TrimSpace(input.Title),
		Content:  strings.TrimSpace(input.Content),
		ImageURL: strings.TrimSpace(input.ImageURL),
		Author:   author.ID,
		Status:   models.BlogStatusPending,
	}

	created, err := s.blogRepo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}

	metrics.BlogCreatedTotal.Inc()
	log.Info().Str("blog_id", created.ID.Hex()).Str("user_id", author.ID.Hex()).Msg("Blog created")
	return created, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, actor *models.User, id primitive.ObjectID, update models.BlogUpdate) (*models.Blog, error) {
	blog, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.Author != actor.ID {
		return nil, ErrForbidden
	}

	updateFields := bson.M{}
	if update.Title != nil {
		updateFields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Content != nil {
		updateFields["content"] = strings.TrimSpace(*update.Content)
	}
	if update.Status != nil && models.ValidBlogStatus(*update.Status) {
		updateFields["status"] = *update.Status
	}
	if update.ImageURL != nil && strings.TrimSpace(*update.ImageURL) != "" {
		updateFields["image_url"] = strings.TrimSpace(*update.ImageURL)
	}

	if len(updateFields) == 0 {
		return nil, ErrMissingFields
	}

	if _, err := s.blogRepo.UpdateOne(ctx, id, updateFields); err != nil {
		return nil, err
	}
	return s.GetBlogByID(ctx, id)
}

func (s *blogService) DeleteBlog(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	blog, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.Author != actor.ID {
		return ErrForbidden
	}

	if _, err := s.blogRepo.DeleteOne(ctx, id); err != nil {
		return err
	}
	log.Info().Str("blog_id", id.Hex()).Str("user_id", actor.ID.Hex()).Msg("Blog deleted")
	return nil
}

// SetBlogStatus is the moderation hook; routing restricts it to admins.
func (s *blogService) SetBlogStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Blog, error) {
	if !models.ValidBlogStatus(status) {
		return nil, fmt.Errorf("%w: unknown blog status %q", ErrMissingFields, status)
	}

	if _, err := s.GetBlogByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.blogRepo.UpdateOne(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	return s.GetBlogByID(ctx, id)
}
