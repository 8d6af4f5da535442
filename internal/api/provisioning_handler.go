package api

import (
	"net/http"

	"gymbook/admin-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProvisioningHandler exposes the two trainer-account orchestration
// operations.
type ProvisioningHandler struct {
	provisioning service.ProvisioningService
}

func NewProvisioningHandler(provisioning service.ProvisioningService) *ProvisioningHandler {
	return &ProvisioningHandler{provisioning: provisioning}
}

// --- DTOs ---

// CreateTrainerRequest carries the create form. Field names match the
// console's wire format; pointer fields are optional with server-side
// defaults (kaina 45, order 1, active true).
type CreateTrainerRequest struct {
	Email          string   `json:"email" binding:"required"`
	TempPassword   string   `json:"tempPassword" binding:"required"`
	FirstName      string   `json:"vardas" binding:"required"`
	LastName       string   `json:"pavarde" binding:"required"`
	GymID          string   `json:"gymId" binding:"required"`
	Price          *float64 `json:"kaina"`
	Specialization string   `json:"specializacija" binding:"required"`
	Description    string   `json:"aprasymas"`
	Order          *int     `json:"order"`
	Active         *bool    `json:"active"`
}

type TrainerAccountResponse struct {
	OK        bool   `json:"ok"`
	UID       string `json:"uid"`
	TrainerID string `json:"trainerId"`
}

// CreateTrainer godoc
// @Summary Provision a trainer account
// @Description Creates the identity record, user profile and trainer document as one unit.
// @Tags Provisioning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainer body CreateTrainerRequest true "New trainer"
// @Success 200 {object} TrainerAccountResponse
// @Failure 400 {object} gin.H "Invalid argument"
// @Failure 401 {object} gin.H "Unauthenticated"
// @Failure 403 {object} gin.H "Permission denied"
// @Failure 409 {object} gin.H "Email already has an identity"
// @Router /admin/trainers [post]
func (h *ProvisioningHandler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	callerUID, _ := getUserIDFromContext(c)

	result, err := h.provisioning.CreateTrainerAccount(c.Request.Context(), callerUID, service.CreateTrainerInput{
		Email:          req.Email,
		TempPassword:   req.TempPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		GymID:          req.GymID,
		Specialization: req.Specialization,
		Description:    req.Description,
		Price:          req.Price,
		Order:          req.Order,
		Active:         req.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TrainerAccountResponse{OK: true, UID: result.UID, TrainerID: result.TrainerID})
}

// DeleteTrainer godoc
// @Summary Delete a trainer account completely
// @Description Cascades time slots and reservations, then removes the trainer, profile and identity.
// @Tags Provisioning
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identity uid"
// @Success 200 {object} TrainerAccountResponse
// @Failure 400 {object} gin.H "Empty uid"
// @Failure 401 {object} gin.H "Unauthenticated"
// @Failure 403 {object} gin.H "Permission denied"
// @Failure 404 {object} gin.H "No trainer references this uid"
// @Router /admin/trainers/{id} [delete]
func (h *ProvisioningHandler) DeleteTrainer(c *gin.Context) {
	callerUID, _ := getUserIDFromContext(c)
	uid := c.Param("id")

	result, err := h.provisioning.DeleteTrainerCompletely(c.Request.Context(), callerUID, uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TrainerAccountResponse{OK: true, UID: result.UID, TrainerID: result.TrainerID})
}
