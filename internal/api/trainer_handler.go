package api

import (
	"net/http"

	"gymbook/admin-app/internal/apperr"
	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainerHandler struct {
	trainerService service.TrainerService
}

func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs ---

// UpdateTrainerRequest mirrors the console's edit form.
type UpdateTrainerRequest struct {
	GymID          string  `json:"gymId" binding:"required"`
	Price          float64 `json:"kaina" binding:"required"`
	Specialization string  `json:"specializacija" binding:"required"`
	Description    string  `json:"aprasymas"`
	Order          int     `json:"order"`
	Active         bool    `json:"active"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type TrainerResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	GymID          string  `json:"gymId"`
	Price          float64 `json:"kaina"`
	Specialization string  `json:"specializacija"`
	Description    string  `json:"aprasymas"`
	Order          int     `json:"order"`
	Active         bool    `json:"active"`
	FirstName      string  `json:"vardas"`
	LastName       string  `json:"pavarde"`
	Email          string  `json:"email"`
	PhotoKey       string  `json:"photoKey,omitempty"`
}

func mapTrainer(t *domain.Trainer) TrainerResponse {
	return TrainerResponse{
		ID:             t.ID.Hex(),
		UserID:         t.UserID,
		GymID:          t.GymID,
		Price:          t.Price,
		Specialization: t.Specialization,
		Description:    t.Description,
		Order:          t.Order,
		Active:         t.IsActive(),
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Email:          t.Email,
		PhotoKey:       t.PhotoKey,
	}
}

func mapTrainers(trainers []domain.Trainer) []TrainerResponse {
	out := make([]TrainerResponse, len(trainers))
	for i := range trainers {
		out[i] = mapTrainer(&trainers[i])
	}
	return out
}

// ListTrainers returns all trainers sorted by display order.
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	callerUID, _ := getUserIDFromContext(c)

	trainers, err := h.trainerService.ListTrainers(c.Request.Context(), callerUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainers(trainers))
}

// UpdateTrainer saves the edit form.
func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidArgument("invalid trainer id"))
		return
	}

	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	trainer, err := h.trainerService.UpdateTrainer(c.Request.Context(), callerUID, id, service.UpdateTrainerInput{
		GymID:          req.GymID,
		Price:          req.Price,
		Specialization: req.Specialization,
		Description:    req.Description,
		Order:          req.Order,
		Active:         req.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainer(trainer))
}

// SyncFromUser copies name/email from the owning user profile onto the
// trainer document.
func (h *TrainerHandler) SyncFromUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidArgument("invalid trainer id"))
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	trainer, err := h.trainerService.SyncFromUser(c.Request.Context(), callerUID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainer(trainer))
}

// IssuePhotoUploadURL hands the browser a presigned PUT URL for the
// trainer's photo.
func (h *TrainerHandler) IssuePhotoUploadURL(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidArgument("invalid trainer id"))
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	upload, err := h.trainerService.IssuePhotoUploadURL(c.Request.Context(), callerUID, id, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// RemovePhoto deletes the trainer's photo object and clears the key.
func (h *TrainerHandler) RemovePhoto(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidArgument("invalid trainer id"))
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	if err := h.trainerService.RemovePhoto(c.Request.Context(), callerUID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
