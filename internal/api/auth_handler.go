package api

import (
	"errors"
	"net/http"

	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user,omitempty"`
}

type UserProfile struct {
	ID        string      `json:"id"`
	FirstName string      `json:"vardas"`
	LastName  string      `json:"pavarde"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

func mapProfile(p *domain.UserProfile) *UserProfile {
	if p == nil {
		return nil
	}
	return &UserProfile{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Role:      p.Role,
	}
}

// Login godoc
// @Summary Console login
// @Description Authenticates an admin and returns a JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} gin.H "Validation error"
// @Failure 401 {object} gin.H "Bad credentials or disabled account"
// @Failure 403 {object} gin.H "No console access"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, profile, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed), errors.Is(err, service.ErrAccountDisabled):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrNotConsoleAdmin):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Login failed.")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: mapProfile(profile)})
}
