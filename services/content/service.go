package content

import (
	"context"
	"strings"
	"time"

	contentRepo "brightsite/database/repository/content"
	"brightsite/models"
	"brightsite/services/storage"
	"brightsite/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultContentService is the production content service.
type DefaultContentService struct {
	Repo    contentRepo.ContentRepository
	Storage storage.StorageService // optional
}

// NewDefaultContentService wires the service with its collaborators.
func NewDefaultContentService(repo contentRepo.ContentRepository, store storage.StorageService) *DefaultContentService {
	return &DefaultContentService{Repo: repo, Storage: store}
}

// removeImage deletes a stored image. A failed delete is logged and swallowed
// so a dangling file never blocks a content edit.
func (s *DefaultContentService) removeImage(ctx context.Context, publicID string) {
	if publicID == "" || s.Storage == nil {
		return
	}
	if err := s.Storage.DeleteFile(ctx, publicID); err != nil {
		utils.GetLogger().Warn("failed to delete stored image",
			zap.String("publicID", publicID), zap.Error(err))
	}
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	return nil
}

// fillSubServices assigns IDs and slugs to sub-services missing them.
// Sub-service slugs only need to read well in URLs, not be globally unique.
func fillSubServices(subs []models.SubService) {
	for i := range subs {
		if subs[i].ID == "" {
			subs[i].ID = uuid.New().String()
		}
		if subs[i].Slug == "" {
			subs[i].Slug = Slugify(subs[i].Title)
		}
	}
}

// --- Services ---

func (s *DefaultContentService) CreateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := requireTitle(service.Title); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, contentRepo.CollServices, service.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	service.ID = uuid.New().String()
	service.Slug = slug
	service.CreatedAt = now
	service.UpdatedAt = now
	if service.SubServices == nil {
		service.SubServices = []models.SubService{}
	}
	fillSubServices(service.SubServices)

	if err := s.Repo.CreateService(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *DefaultContentService) UpdateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := requireTitle(service.Title); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetServiceByID(ctx, service.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "service", Key: service.ID}
		}
		return nil, err
	}

	// Slugs are permanent once assigned; published URLs depend on them.
	service.Slug = existing.Slug
	service.CreatedAt = existing.CreatedAt
	service.UpdatedAt = time.Now()
	fillSubServices(service.SubServices)

	if err := s.Repo.UpdateService(ctx, service); err != nil {
		return nil, err
	}
	if existing.ImageURL != "" && existing.ImageURL != service.ImageURL {
		s.removeImage(ctx, existing.ImageURL)
	}
	return service, nil
}

func (s *DefaultContentService) DeleteService(ctx context.Context, id string) error {
	existing, err := s.Repo.GetServiceByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &NotFoundError{Entity: "service", Key: id}
		}
		return err
	}
	if err := s.Repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.removeImage(ctx, existing.ImageURL)
	for _, sub := range existing.SubServices {
		s.removeImage(ctx, sub.ImageURL)
	}
	return nil
}

func (s *DefaultContentService) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	service, err := s.Repo.GetServiceBySlug(ctx, slug)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "service", Key: slug}
		}
		return nil, err
	}
	return service, nil
}

func (s *DefaultContentService) ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	return s.Repo.ListServices(ctx, publishedOnly)
}

func (s *DefaultContentService) GetSubService(ctx context.Context, subServiceID string) (*models.Service, *models.SubService, error) {
	service, sub, err := s.Repo.GetSubService(ctx, subServiceID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, &NotFoundError{Entity: "sub-service", Key: subServiceID}
		}
		return nil, nil, err
	}
	return service, sub, nil
}

// --- Industries ---

func (s *DefaultContentService) CreateIndustry(ctx context.Context, industry *models.Industry) (*models.Industry, error) {
	if err := requireTitle(industry.Title); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, contentRepo.CollIndustries, industry.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	industry.ID = uuid.New().String()
	industry.Slug = slug
	industry.CreatedAt = now
	industry.UpdatedAt = now

	if err := s.Repo.CreateIndustry(ctx, industry); err != nil {
		return nil, err
	}
	return industry, nil
}

func (s *DefaultContentService) UpdateIndustry(ctx context.Context, industry *models.Industry) (*models.Industry, error) {
	if err := requireTitle(industry.Title); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetIndustryByID(ctx, industry.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "industry", Key: industry.ID}
		}
		return nil, err
	}

	industry.Slug = existing.Slug
	industry.CreatedAt = existing.CreatedAt
	industry.UpdatedAt = time.Now()

	if err := s.Repo.UpdateIndustry(ctx, industry); err != nil {
		return nil, err
	}
	if existing.ImageURL != "" && existing.ImageURL != industry.ImageURL {
		s.removeImage(ctx, existing.ImageURL)
	}
	return industry, nil
}

func (s *DefaultContentService) DeleteIndustry(ctx context.Context, id string) error {
	existing, err := s.Repo.GetIndustryByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &NotFoundError{Entity: "industry", Key: id}
		}
		return err
	}
	if err := s.Repo.DeleteIndustry(ctx, id); err != nil {
		return err
	}
	s.removeImage(ctx, existing.ImageURL)
	return nil
}

func (s *DefaultContentService) GetIndustryBySlug(ctx context.Context, slug string) (*models.Industry, error) {
	industry, err := s.Repo.GetIndustryBySlug(ctx, slug)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "industry", Key: slug}
		}
		return nil, err
	}
	return industry, nil
}

func (s *DefaultContentService) ListIndustries(ctx context.Context, publishedOnly bool) ([]models.Industry, error) {
	return s.Repo.ListIndustries(ctx, publishedOnly)
}

// --- Blog posts ---

func (s *DefaultContentService) CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := requireTitle(post.Title); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, contentRepo.CollBlogPosts, post.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post.ID = uuid.New().String()
	post.Slug = slug
	post.CreatedAt = now
	post.UpdatedAt = now

	if err := s.Repo.CreateBlogPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *DefaultContentService) UpdateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := requireTitle(post.Title); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetBlogPostByID(ctx, post.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "blog post", Key: post.ID}
		}
		return nil, err
	}

	post.Slug = existing.Slug
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now()

	if err := s.Repo.UpdateBlogPost(ctx, post); err != nil {
		return nil, err
	}
	if existing.CoverURL != "" && existing.CoverURL != post.CoverURL {
		s.removeImage(ctx, existing.CoverURL)
	}
	return post, nil
}

func (s *DefaultContentService) DeleteBlogPost(ctx context.Context, id string) error {
	existing, err := s.Repo.GetBlogPostByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &NotFoundError{Entity: "blog post", Key: id}
		}
		return err
	}
	if err := s.Repo.DeleteBlogPost(ctx, id); err != nil {
		return err
	}
	s.removeImage(ctx, existing.CoverURL)
	return nil
}

func (s *DefaultContentService) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.Repo.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "blog post", Key: slug}
		}
		return nil, err
	}
	return post, nil
}

func (s *DefaultContentService) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	return s.Repo.ListBlogPosts(ctx, publishedOnly)
}

// --- Testimonials ---

func (s *DefaultContentService) CreateTestimonial(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error) {
	if strings.TrimSpace(testimonial.Author) == "" {
		return nil, &ValidationError{Field: "author", Message: "is required"}
	}
	if strings.TrimSpace(testimonial.Quote) == "" {
		return nil, &ValidationError{Field: "quote", Message: "is required"}
	}

	now := time.Now()
	testimonial.ID = uuid.New().String()
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	if err := s.Repo.CreateTestimonial(ctx, testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

func (s *DefaultContentService) DeleteTestimonial(ctx context.Context, id string) error {
	existing, err := s.Repo.GetTestimonialByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &NotFoundError{Entity: "testimonial", Key: id}
		}
		return err
	}
	if err := s.Repo.DeleteTestimonial(ctx, id); err != nil {
		return err
	}
	s.removeImage(ctx, existing.AvatarURL)
	return nil
}

func (s *DefaultContentService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.Repo.ListTestimonials(ctx)
}
