package contentRepo

import (
	"context"
	"fmt"
	"time"

	"brightsite/database"
	"brightsite/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the content repository.
const (
	CollServices     = "services"
	CollIndustries   = "industries"
	CollBlogPosts    = "blog_posts"
	CollTestimonials = "testimonials"
)

// MongoContentRepo implements ContentRepository backed by MongoDB.
type MongoContentRepo struct {
	db *mongo.Database
}

// NewMongoContentRepo returns a repository over the content collections.
func NewMongoContentRepo() *MongoContentRepo {
	repo := &MongoContentRepo{db: database.Collection(CollServices).Database()}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoContentRepo) coll(name string) *mongo.Collection {
	return repo.db.Collection(name)
}

func publishedFilter(publishedOnly bool) bson.M {
	if publishedOnly {
		return bson.M{"is_published": true}
	}
	return bson.M{}
}

// --- Services ---

func (repo *MongoContentRepo) CreateService(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := repo.coll(CollServices).InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

func (repo *MongoContentRepo) UpdateService(ctx context.Context, service *models.Service) error {
	return repo.replaceByID(ctx, CollServices, service.ID, service)
}

func (repo *MongoContentRepo) DeleteService(ctx context.Context, id string) error {
	return repo.deleteByID(ctx, CollServices, id)
}

func (repo *MongoContentRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var service models.Service
	if err := repo.coll(CollServices).FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (repo *MongoContentRepo) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var service models.Service
	if err := repo.coll(CollServices).FindOne(ctx, bson.M{"slug": slug}).Decode(&service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (repo *MongoContentRepo) ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll(CollServices).Find(ctx, publishedFilter(publishedOnly),
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (repo *MongoContentRepo) GetSubService(ctx context.Context, subServiceID string) (*models.Service, *models.SubService, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	err := repo.coll(CollServices).FindOne(ctx, bson.M{"sub_services.id": subServiceID}).Decode(&service)
	if err != nil {
		return nil, nil, err
	}
	for i := range service.SubServices {
		if service.SubServices[i].ID == subServiceID {
			return &service, &service.SubServices[i], nil
		}
	}
	return nil, nil, mongo.ErrNoDocuments
}

// --- Industries ---

func (repo *MongoContentRepo) CreateIndustry(ctx context.Context, industry *models.Industry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := repo.coll(CollIndustries).InsertOne(ctx, industry); err != nil {
		return fmt.Errorf("failed to insert industry: %w", err)
	}
	return nil
}

func (repo *MongoContentRepo) UpdateIndustry(ctx context.Context, industry *models.Industry) error {
	return repo.replaceByID(ctx, CollIndustries, industry.ID, industry)
}

func (repo *MongoContentRepo) DeleteIndustry(ctx context.Context, id string) error {
	return repo.deleteByID(ctx, CollIndustries, id)
}

func (repo *MongoContentRepo) GetIndustryByID(ctx context.Context, id string) (*models.Industry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var industry models.Industry
	if err := repo.coll(CollIndustries).FindOne(ctx, bson.M{"id": id}).Decode(&industry); err != nil {
		return nil, err
	}
	return &industry, nil
}

func (repo *MongoContentRepo) GetIndustryBySlug(ctx context.Context, slug string) (*models.Industry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var industry models.Industry
	if err := repo.coll(CollIndustries).FindOne(ctx, bson.M{"slug": slug}).Decode(&industry); err != nil {
		return nil, err
	}
	return &industry, nil
}

func (repo *MongoContentRepo) ListIndustries(ctx context.Context, publishedOnly bool) ([]models.Industry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll(CollIndustries).Find(ctx, publishedFilter(publishedOnly),
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}
	defer cursor.Close(ctx)

	var industries []models.Industry
	if err := cursor.All(ctx, &industries); err != nil {
		return nil, fmt.Errorf("failed to decode industries: %w", err)
	}
	return industries, nil
}

// --- Blog posts ---

func (repo *MongoContentRepo) CreateBlogPost(ctx context.Context, post *models.BlogPost) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := repo.coll(CollBlogPosts).InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

func (repo *MongoContentRepo) UpdateBlogPost(ctx context.Context, post *models.BlogPost) error {
	return repo.replaceByID(ctx, CollBlogPosts, post.ID, post)
}

func (repo *MongoContentRepo) DeleteBlogPost(ctx context.Context, id string) error {
	return repo.deleteByID(ctx, CollBlogPosts, id)
}

func (repo *MongoContentRepo) GetBlogPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var post models.BlogPost
	if err := repo.coll(CollBlogPosts).FindOne(ctx, bson.M{"id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (repo *MongoContentRepo) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var post models.BlogPost
	if err := repo.coll(CollBlogPosts).FindOne(ctx, bson.M{"slug": slug}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (repo *MongoContentRepo) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll(CollBlogPosts).Find(ctx, publishedFilter(publishedOnly),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.BlogPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}
	return posts, nil
}

// --- Testimonials ---

func (repo *MongoContentRepo) CreateTestimonial(ctx context.Context, testimonial *models.Testimonial) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := repo.coll(CollTestimonials).InsertOne(ctx, testimonial); err != nil {
		return fmt.Errorf("failed to insert testimonial: %w", err)
	}
	return nil
}

func (repo *MongoContentRepo) DeleteTestimonial(ctx context.Context, id string) error {
	return repo.deleteByID(ctx, CollTestimonials, id)
}

func (repo *MongoContentRepo) GetTestimonialByID(ctx context.Context, id string) (*models.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var testimonial models.Testimonial
	if err := repo.coll(CollTestimonials).FindOne(ctx, bson.M{"id": id}).Decode(&testimonial); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (repo *MongoContentRepo) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll(CollTestimonials).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var testimonials []models.Testimonial
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}
	return testimonials, nil
}

// --- Shared helpers ---

func (repo *MongoContentRepo) SlugExists(ctx context.Context, collection, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll(collection).CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, fmt.Errorf("failed to check slug %q in %s: %w", slug, collection, err)
	}
	return count > 0, nil
}

func (repo *MongoContentRepo) replaceByID(ctx context.Context, collection, id string, doc interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll(collection).ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoContentRepo) deleteByID(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll(collection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
