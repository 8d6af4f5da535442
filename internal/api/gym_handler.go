package api

import (
	"net/http"

	"gymbook/admin-app/internal/apperr"
	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GymHandler struct {
	gymService service.GymService
}

func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

// --- DTOs ---

type GymRequest struct {
	Name    string `json:"pavadinimas" binding:"required"`
	Address string `json:"adresas" binding:"required"`
	Order   int    `json:"order"`
}

type GymResponse struct {
	ID      string `json:"id"`
	Name    string `json:"pavadinimas"`
	Address string `json:"adresas"`
	Order   int    `json:"order"`
}

func mapGym(g *domain.Gym) GymResponse {
	return GymResponse{
		ID:      g.ID.Hex(),
		Name:    g.Name,
		Address: g.Address,
		Order:   g.Order,
	}
}

func mapGyms(gyms []domain.Gym) []GymResponse {
	out := make([]GymResponse, len(gyms))
	for i := range gyms {
		out[i] = mapGym(&gyms[i])
	}
	return out
}

// ListGyms returns the catalog sorted by display order.
func (h *GymHandler) ListGyms(c *gin.Context) {
	callerUID, _ := getUserIDFromContext(c)

	gyms, err := h.gymService.ListGyms(c.Request.Context(), callerUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGyms(gyms))
}

// CreateGym adds a gym to the catalog.
func (h *GymHandler) CreateGym(c *gin.Context) {
	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	gym, err := h.gymService.CreateGym(c.Request.Context(), callerUID, service.GymInput{
		Name:    req.Name,
		Address: req.Address,
		Order:   req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapGym(gym))
}

// UpdateGym overwrites a gym's editable fields.
func (h *GymHandler) UpdateGym(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidArgument("invalid gym id"))
		return
	}

	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	gym, err := h.gymService.UpdateGym(c.Request.Context(), callerUID, id, service.GymInput{
		Name:    req.Name,
		Address: req.Address,
		Order:   req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGym(gym))
}

// DeleteGym removes a gym. Trainers referencing it are left untouched.
func (h *GymHandler) DeleteGym(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidArgument("invalid gym id"))
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	if err := h.gymService.DeleteGym(c.Request.Context(), callerUID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
