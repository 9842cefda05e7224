package handlers

import (
	"net/http"

	"brightsite/models"
	"brightsite/services/content"

	"github.com/gin-gonic/gin"
)

// ContentHandler exposes the marketing content endpoints. Public reads only
// surface published entries; the admin surface sees everything.
type ContentHandler struct {
	Service content.ContentService
}

func NewContentHandler(service content.ContentService) *ContentHandler {
	return &ContentHandler{Service: service}
}

// publishedOnly is true for the public surface, false behind admin auth.
func publishedOnly(c *gin.Context) bool {
	isAdmin, _ := c.Get("isAdmin")
	return isAdmin != true
}

// --- Services ---

func (h *ContentHandler) CreateService(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.Service.CreateService(c.Request.Context(), &service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler) UpdateService(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	service.ID = c.Param("id")
	updated, err := h.Service.UpdateService(c.Request.Context(), &service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler) DeleteService(c *gin.Context) {
	if err := h.Service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func (h *ContentHandler) GetServiceBySlug(c *gin.Context) {
	service, err := h.Service.GetServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if publishedOnly(c) && !service.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *ContentHandler) ListServices(c *gin.Context) {
	services, err := h.Service.ListServices(c.Request.Context(), publishedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	c.JSON(http.StatusOK, services)
}

// --- Industries ---

func (h *ContentHandler) CreateIndustry(c *gin.Context) {
	var industry models.Industry
	if err := c.ShouldBindJSON(&industry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.Service.CreateIndustry(c.Request.Context(), &industry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler) UpdateIndustry(c *gin.Context) {
	var industry models.Industry
	if err := c.ShouldBindJSON(&industry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	industry.ID = c.Param("id")
	updated, err := h.Service.UpdateIndustry(c.Request.Context(), &industry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler) DeleteIndustry(c *gin.Context) {
	if err := h.Service.DeleteIndustry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "industry deleted"})
}

func (h *ContentHandler) GetIndustryBySlug(c *gin.Context) {
	industry, err := h.Service.GetIndustryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if publishedOnly(c) && !industry.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "industry not found"})
		return
	}
	c.JSON(http.StatusOK, industry)
}

func (h *ContentHandler) ListIndustries(c *gin.Context) {
	industries, err := h.Service.ListIndustries(c.Request.Context(), publishedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if industries == nil {
		industries = []models.Industry{}
	}
	c.JSON(http.StatusOK, industries)
}

// --- Blog posts ---

func (h *ContentHandler) CreateBlogPost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.Service.CreateBlogPost(c.Request.Context(), &post)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler) UpdateBlogPost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	post.ID = c.Param("id")
	updated, err := h.Service.UpdateBlogPost(c.Request.Context(), &post)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler) DeleteBlogPost(c *gin.Context) {
	if err := h.Service.DeleteBlogPost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post deleted"})
}

func (h *ContentHandler) GetBlogPostBySlug(c *gin.Context) {
	post, err := h.Service.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if publishedOnly(c) && !post.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ContentHandler) ListBlogPosts(c *gin.Context) {
	posts, err := h.Service.ListBlogPosts(c.Request.Context(), publishedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// --- Testimonials ---

func (h *ContentHandler) CreateTestimonial(c *gin.Context) {
	var testimonial models.Testimonial
	if err := c.ShouldBindJSON(&testimonial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.Service.CreateTestimonial(c.Request.Context(), &testimonial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler) DeleteTestimonial(c *gin.Context) {
	if err := h.Service.DeleteTestimonial(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted"})
}

func (h *ContentHandler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.Service.ListTestimonials(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	c.JSON(http.StatusOK, testimonials)
}
