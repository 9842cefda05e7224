package handlers

import (
	"net/http"
	"time"

	userRepo "brightsite/database/repository/user"
	"brightsite/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// adminSessionTTL bounds how long an admin stays signed in.
const adminSessionTTL = 12 * time.Hour

// AuthHandler manages admin sign-in. Sessions are a JWT cookie whose hash is
// held in the auth cache, so logout and revocation are cache deletes.
type AuthHandler struct {
	Users userRepo.UserRepository
}

func NewAuthHandler(users userRepo.UserRepository) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Login handles POST /admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, adminSessionTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	authCache := utils.GetAuthCacheClient()
	if err := authCache.Set(c.Request.Context(), "admin_session:"+user.ID, utils.HashToken(token), adminSessionTTL).Err(); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("admin_token", token, int(adminSessionTTL.Seconds()), "/", "", false, true)
	utils.GetLogger().Info("admin signed in", zap.String("adminID", user.ID))
	c.JSON(http.StatusOK, gin.H{"message": "signed in"})
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	adminID, ok := c.Get("adminID")
	if ok {
		authCache := utils.GetAuthCacheClient()
		if err := authCache.Del(c.Request.Context(), "admin_session:"+adminID.(string)).Err(); err != nil {
			utils.GetLogger().Warn("failed to revoke admin session", zap.Error(err))
		}
	}
	c.SetCookie("admin_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
