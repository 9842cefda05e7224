package content

import (
	"context"
	"errors"
	"testing"

	contentRepo "brightsite/database/repository/content"
	"brightsite/models"
	"brightsite/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeContentRepo struct {
	services     map[string]*models.Service
	industries   map[string]*models.Industry
	posts        map[string]*models.BlogPost
	testimonials map[string]*models.Testimonial
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		services:     make(map[string]*models.Service),
		industries:   make(map[string]*models.Industry),
		posts:        make(map[string]*models.BlogPost),
		testimonials: make(map[string]*models.Testimonial),
	}
}

func (r *fakeContentRepo) CreateService(ctx context.Context, s *models.Service) error {
	copied := *s
	r.services[s.ID] = &copied
	return nil
}

func (r *fakeContentRepo) UpdateService(ctx context.Context, s *models.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *s
	r.services[s.ID] = &copied
	return nil
}

func (r *fakeContentRepo) DeleteService(ctx context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.services, id)
	return nil
}

func (r *fakeContentRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	for _, s := range r.services {
		if s.Slug == slug {
			copied := *s
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if !publishedOnly || s.IsPublished {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) GetSubService(ctx context.Context, subServiceID string) (*models.Service, *models.SubService, error) {
	for _, s := range r.services {
		for i := range s.SubServices {
			if s.SubServices[i].ID == subServiceID {
				copied := *s
				return &copied, &copied.SubServices[i], nil
			}
		}
	}
	return nil, nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) CreateIndustry(ctx context.Context, in *models.Industry) error {
	copied := *in
	r.industries[in.ID] = &copied
	return nil
}

func (r *fakeContentRepo) UpdateIndustry(ctx context.Context, in *models.Industry) error {
	if _, ok := r.industries[in.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *in
	r.industries[in.ID] = &copied
	return nil
}

func (r *fakeContentRepo) DeleteIndustry(ctx context.Context, id string) error {
	if _, ok := r.industries[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.industries, id)
	return nil
}

func (r *fakeContentRepo) GetIndustryByID(ctx context.Context, id string) (*models.Industry, error) {
	if in, ok := r.industries[id]; ok {
		copied := *in
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) GetIndustryBySlug(ctx context.Context, slug string) (*models.Industry, error) {
	for _, in := range r.industries {
		if in.Slug == slug {
			copied := *in
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) ListIndustries(ctx context.Context, publishedOnly bool) ([]models.Industry, error) {
	var out []models.Industry
	for _, in := range r.industries {
		if !publishedOnly || in.IsPublished {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) CreateBlogPost(ctx context.Context, p *models.BlogPost) error {
	copied := *p
	r.posts[p.ID] = &copied
	return nil
}

func (r *fakeContentRepo) UpdateBlogPost(ctx context.Context, p *models.BlogPost) error {
	if _, ok := r.posts[p.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *p
	r.posts[p.ID] = &copied
	return nil
}

func (r *fakeContentRepo) DeleteBlogPost(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeContentRepo) GetBlogPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, p := range r.posts {
		if !publishedOnly || p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	copied := *t
	r.testimonials[t.ID] = &copied
	return nil
}

func (r *fakeContentRepo) DeleteTestimonial(ctx context.Context, id string) error {
	if _, ok := r.testimonials[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.testimonials, id)
	return nil
}

func (r *fakeContentRepo) GetTestimonialByID(ctx context.Context, id string) (*models.Testimonial, error) {
	if t, ok := r.testimonials[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContentRepo) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var out []models.Testimonial
	for _, t := range r.testimonials {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeContentRepo) SlugExists(ctx context.Context, collection, slug string) (bool, error) {
	switch collection {
	case contentRepo.CollServices:
		for _, s := range r.services {
			if s.Slug == slug {
				return true, nil
			}
		}
	case contentRepo.CollIndustries:
		for _, in := range r.industries {
			if in.Slug == slug {
				return true, nil
			}
		}
	case contentRepo.CollBlogPosts:
		for _, p := range r.posts {
			if p.Slug == slug {
				return true, nil
			}
		}
	}
	return false, nil
}

type recordingStorage struct {
	deleted   []string
	deleteErr error
}

func (s *recordingStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (*storage.UploadResult, error) {
	return &storage.UploadResult{PublicID: destFolder + "/fake", URL: "/uploads/" + destFolder + "/fake"}, nil
}

func (s *recordingStorage) DeleteFile(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return s.deleteErr
}

func (s *recordingStorage) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	return "/uploads/" + publicID, nil
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Web Design", "web-design"},
		{"  SEO & Content  ", "seo-content"},
		{"Already-slugged", "already-slugged"},
		{"Multiple   Spaces!!", "multiple-spaces"},
		{"100% Organic", "100-organic"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func newTestContentService() (*DefaultContentService, *fakeContentRepo, *recordingStorage) {
	repo := newFakeContentRepo()
	store := &recordingStorage{}
	return NewDefaultContentService(repo, store), repo, store
}

func TestCreateServiceAssignsSlugAndIDs(t *testing.T) {
	svc, _, _ := newTestContentService()

	created, err := svc.CreateService(context.Background(), &models.Service{
		Title:       "Web Design",
		SubServices: []models.SubService{{Title: "Landing Pages"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "web-design", created.Slug)
	assert.False(t, created.CreatedAt.IsZero())
	require.Len(t, created.SubServices, 1)
	assert.NotEmpty(t, created.SubServices[0].ID)
	assert.Equal(t, "landing-pages", created.SubServices[0].Slug)
}

func TestCreateServiceSlugCollisionGetsSuffix(t *testing.T) {
	svc, _, _ := newTestContentService()

	first, err := svc.CreateService(context.Background(), &models.Service{Title: "Web Design"})
	require.NoError(t, err)
	second, err := svc.CreateService(context.Background(), &models.Service{Title: "Web design"})
	require.NoError(t, err)
	third, err := svc.CreateService(context.Background(), &models.Service{Title: "web design!"})
	require.NoError(t, err)

	assert.Equal(t, "web-design", first.Slug)
	assert.Equal(t, "web-design-2", second.Slug)
	assert.Equal(t, "web-design-3", third.Slug)
}

func TestCreateServiceRejectsBlankTitle(t *testing.T) {
	svc, _, _ := newTestContentService()

	_, err := svc.CreateService(context.Background(), &models.Service{Title: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = svc.CreateService(context.Background(), &models.Service{Title: "!!!"})
	require.ErrorAs(t, err, &verr)
}

func TestUpdateServiceKeepsSlugAndCreatedAt(t *testing.T) {
	svc, _, _ := newTestContentService()

	created, err := svc.CreateService(context.Background(), &models.Service{Title: "Web Design"})
	require.NoError(t, err)

	updated, err := svc.UpdateService(context.Background(), &models.Service{
		ID:    created.ID,
		Title: "Web Design and Development",
	})
	require.NoError(t, err)
	assert.Equal(t, "web-design", updated.Slug, "published URLs depend on the slug staying put")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateServiceReplacedImageIsDeleted(t *testing.T) {
	svc, repo, store := newTestContentService()

	created, err := svc.CreateService(context.Background(), &models.Service{Title: "Web Design", ImageURL: "img/old"})
	require.NoError(t, err)
	repo.services[created.ID].ImageURL = "img/old"

	_, err = svc.UpdateService(context.Background(), &models.Service{
		ID: created.ID, Title: "Web Design", ImageURL: "img/new",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"img/old"}, store.deleted)
}

func TestDeleteServiceCleansUpImages(t *testing.T) {
	svc, _, store := newTestContentService()

	created, err := svc.CreateService(context.Background(), &models.Service{
		Title:       "Web Design",
		ImageURL:    "img/hero",
		SubServices: []models.SubService{{Title: "Landing Pages", ImageURL: "img/sub"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(context.Background(), created.ID))
	assert.ElementsMatch(t, []string{"img/hero", "img/sub"}, store.deleted)
}

func TestDeleteFailureNeverBlocksEdit(t *testing.T) {
	svc, _, store := newTestContentService()
	store.deleteErr = errors.New("cdn unavailable")

	created, err := svc.CreateService(context.Background(), &models.Service{Title: "Web Design", ImageURL: "img/hero"})
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteService(context.Background(), created.ID))
}

func TestDeleteServiceNotFound(t *testing.T) {
	svc, _, _ := newTestContentService()

	err := svc.DeleteService(context.Background(), "missing")
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "service", nfe.Entity)
}

func TestGetSubServiceResolvesOwner(t *testing.T) {
	svc, _, _ := newTestContentService()

	created, err := svc.CreateService(context.Background(), &models.Service{
		Title:       "Web Design",
		SubServices: []models.SubService{{Title: "Landing Pages"}},
	})
	require.NoError(t, err)

	owner, sub, err := svc.GetSubService(context.Background(), created.SubServices[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, owner.ID)
	assert.Equal(t, "Landing Pages", sub.Title)

	_, _, err = svc.GetSubService(context.Background(), "missing")
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestBlogPostSlugUniquePerCollection(t *testing.T) {
	svc, _, _ := newTestContentService()

	// Same title in different collections never collides.
	_, err := svc.CreateService(context.Background(), &models.Service{Title: "Growth"})
	require.NoError(t, err)
	post, err := svc.CreateBlogPost(context.Background(), &models.BlogPost{Title: "Growth", Body: "..."})
	require.NoError(t, err)
	assert.Equal(t, "growth", post.Slug)
}

func TestTestimonialValidation(t *testing.T) {
	svc, _, _ := newTestContentService()

	_, err := svc.CreateTestimonial(context.Background(), &models.Testimonial{Quote: "Great"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "author", verr.Field)

	_, err = svc.CreateTestimonial(context.Background(), &models.Testimonial{Author: "Ann"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quote", verr.Field)

	created, err := svc.CreateTestimonial(context.Background(), &models.Testimonial{Author: "Ann", Quote: "Great"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
