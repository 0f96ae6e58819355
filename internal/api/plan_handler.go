package api

import (
	"fmt"
	"net/http"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/export"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves plan generation, the active plan and its workouts.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GeneratePlanResponse is the stored plan plus advisory coherence warnings.
type GeneratePlanResponse struct {
	Plan     *domain.TrainingPlan `json:"plan"`
	Warnings []string             `json:"warnings,omitempty"`
}

type WorkoutStatusRequest struct {
	Status domain.CompletionStatus `json:"status" binding:"required,oneof=not_started completed skipped"`
}

// GeneratePlan handles POST /plans.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	gen, err := h.planService.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, GeneratePlanResponse{Plan: gen.Plan, Warnings: gen.Warnings})
}

// GetActivePlan handles GET /plans/active.
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdateWorkoutStatus handles PATCH /plans/active/workouts/:workoutId.
func (h *PlanHandler) UpdateWorkoutStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}
	var req WorkoutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.planService.UpdateWorkoutStatus(c.Request.Context(), userID, workoutID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// ExportPlan handles POST /plans/active/export?format=ics|xlsx.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatICS)))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.planService.ExportPlan(c.Request.Context(), userID, format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
