package content

import (
	"context"

	"brightsite/models"
)

// ContentService manages the marketing site's editable content. Slugs are
// generated server-side from titles and kept unique per collection.
type ContentService interface {
	CreateService(ctx context.Context, service *models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
	GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error)

	// GetSubService resolves a bookable resource ID to its sub-service and
	// owning service. The booking handlers use it to validate resource IDs.
	GetSubService(ctx context.Context, subServiceID string) (*models.Service, *models.SubService, error)

	CreateIndustry(ctx context.Context, industry *models.Industry) (*models.Industry, error)
	UpdateIndustry(ctx context.Context, industry *models.Industry) (*models.Industry, error)
	DeleteIndustry(ctx context.Context, id string) error
	GetIndustryBySlug(ctx context.Context, slug string) (*models.Industry, error)
	ListIndustries(ctx context.Context, publishedOnly bool) ([]models.Industry, error)

	CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)

	CreateTestimonial(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
}
