package contentRepo

import (
	"context"

	"brightsite/models"
)

// ContentRepository manages the marketing content entities: services (with
// their bookable sub-services), industries, blog posts and testimonials.
type ContentRepository interface {
	CreateService(ctx context.Context, service *models.Service) error
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id string) error
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error)

	// GetSubService resolves a bookable resource ID to its sub-service and
	// owning service.
	GetSubService(ctx context.Context, subServiceID string) (*models.Service, *models.SubService, error)

	CreateIndustry(ctx context.Context, industry *models.Industry) error
	UpdateIndustry(ctx context.Context, industry *models.Industry) error
	DeleteIndustry(ctx context.Context, id string) error
	GetIndustryByID(ctx context.Context, id string) (*models.Industry, error)
	GetIndustryBySlug(ctx context.Context, slug string) (*models.Industry, error)
	ListIndustries(ctx context.Context, publishedOnly bool) ([]models.Industry, error)

	CreateBlogPost(ctx context.Context, post *models.BlogPost) error
	UpdateBlogPost(ctx context.Context, post *models.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error
	GetBlogPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)

	CreateTestimonial(ctx context.Context, testimonial *models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id string) error
	GetTestimonialByID(ctx context.Context, id string) (*models.Testimonial, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)

	// SlugExists reports whether any entity in the collection already uses
	// the slug. Slug generation appends a suffix until this returns false.
	SlugExists(ctx context.Context, collection, slug string) (bool, error)
}
