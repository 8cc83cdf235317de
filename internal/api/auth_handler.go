package api

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	images      *storage.ImageResolver
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler. images may be nil.
func NewAuthHandler(authService service.AuthService, images *storage.ImageResolver, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, images: images, log: log}
}

// --- Request/Response Structs ---

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// --- Handler Methods ---

// Login godoc
// @Summary Log in a user
// @Description Looks the user up by email and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Missing fields or unknown user"
// @Failure 401 {object} gin.H "Wrong password (with verification enabled)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, service.ErrMissingCredentials.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials), errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.log.WithError(err).Error("Login failed")
			abortWithError(c, http.StatusInternalServerError, "Internal Server error")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		User:    h.mapUserToResponse(c.Request.Context(), user),
		Token:   token,
	})
}

// Me returns the user identified by the bearer token.
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidUserID) {
			abortWithError(c, http.StatusNotFound, service.ErrUserNotFound.Error())
			return
		}
		h.log.WithError(err).Error("Failed to load current user")
		abortWithError(c, http.StatusInternalServerError, "Internal Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": h.mapUserToResponse(c.Request.Context(), user)})
}

// Logout is stateless: tokens simply expire, the client discards its copy.
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// mapUserToResponse converts a domain User to a UserResponse DTO and resolves
// the profile image to a loadable URL.
func (h *AuthHandler) mapUserToResponse(ctx context.Context, user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:         user.ID.Hex(),
		Name:       user.Name,
		Email:      user.Email,
		ProfilePic: h.images.ResolveImageURL(ctx, user.ProfilePic),
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
