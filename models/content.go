package models

import "time"

// Service is a top-level marketing service page. Its sub-services are the
// bookable resources the availability engine schedules against.
type Service struct {
	ID          string       `bson:"id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Slug        string       `bson:"slug" json:"slug"`
	Description string       `bson:"description" json:"description"`
	ImageURL    string       `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	SubServices []SubService `bson:"sub_services" json:"subServices"`
	IsPublished bool         `bson:"is_published" json:"isPublished"`
	CreatedAt   time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updatedAt"`
}

// SubService is a bookable item under a service.
type SubService struct {
	ID          string  `bson:"id" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Slug        string  `bson:"slug" json:"slug"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price,omitempty" json:"price,omitempty"`
	ImageURL    string  `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Industry is a marketing page describing a served industry.
type Industry struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	IsPublished bool      `bson:"is_published" json:"isPublished"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// BlogPost is a marketing blog entry.
type BlogPost struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Slug        string    `bson:"slug" json:"slug"`
	Body        string    `bson:"body" json:"body"`
	CoverURL    string    `bson:"cover_url,omitempty" json:"coverUrl,omitempty"`
	Author      string    `bson:"author,omitempty" json:"author,omitempty"`
	IsPublished bool      `bson:"is_published" json:"isPublished"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Testimonial is a customer quote shown on the marketing site.
type Testimonial struct {
	ID        string    `bson:"id" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Company   string    `bson:"company,omitempty" json:"company,omitempty"`
	Quote     string    `bson:"quote" json:"quote"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	Rating    int       `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
