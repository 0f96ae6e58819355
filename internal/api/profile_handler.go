package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the caller's fitness profile and injuries.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type GoalRequest struct {
	Type        domain.GoalType   `json:"type" binding:"required,oneof=race distance strength_milestone general_fitness"`
	Description string            `json:"description"`
	TargetDate  *time.Time        `json:"targetDate"`
	Priority    int               `json:"priority" binding:"required,min=1"`
	Status      domain.GoalStatus `json:"status" binding:"omitempty,oneof=active achieved abandoned"`
}

type ProfileRequest struct {
	FitnessLevels      map[domain.Discipline]domain.FitnessLevel `json:"fitnessLevels"`
	AvailableDays      []string                                  `json:"availableDays" binding:"required,min=1"`
	MinSessionsPerWeek int                                       `json:"minSessionsPerWeek" binding:"min=0,max=7"`
	MaxSessionsPerWeek int                                       `json:"maxSessionsPerWeek" binding:"required,min=1,max=7"`
	Goals              []GoalRequest                             `json:"goals" binding:"required,min=1,dive"`
}

type InjuryRequest struct {
	BodyPart     string              `json:"bodyPart" binding:"required"`
	Class        domain.InjuryClass  `json:"class" binding:"omitempty,oneof=acute chronic"`
	Restrictions []string            `json:"restrictions"`
	Status       domain.InjuryStatus `json:"status" binding:"omitempty,oneof=active improving resolved"`
}

func (r InjuryRequest) toDomain() domain.InjuryLimitation {
	return domain.InjuryLimitation{
		BodyPart:     r.BodyPart,
		Class:        r.Class,
		Restrictions: r.Restrictions,
		Status:       r.Status,
	}
}

type InjuryStatusRequest struct {
	Status domain.InjuryStatus `json:"status" binding:"required,oneof=active improving resolved"`
}

// InjuryResponse is the updated profile plus the adaptation it caused, if any.
type InjuryResponse struct {
	Profile    *domain.UserProfile `json:"profile"`
	Adaptation *planning.Result    `json:"adaptation,omitempty"`
}

// GetProfile handles GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile handles PUT /profile.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	availability, err := domain.ParseAvailability(req.AvailableDays)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	profile := &domain.UserProfile{
		FitnessLevels:      req.FitnessLevels,
		Availability:       availability,
		MinSessionsPerWeek: req.MinSessionsPerWeek,
		MaxSessionsPerWeek: req.MaxSessionsPerWeek,
	}
	for _, g := range req.Goals {
		profile.Goals = append(profile.Goals, domain.TrainingGoal{
			Type:        g.Type,
			Description: g.Description,
			TargetDate:  g.TargetDate,
			Priority:    g.Priority,
			Status:      g.Status,
		})
	}

	saved, err := h.profileService.SaveProfile(c.Request.Context(), userID, profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// AddInjury handles POST /profile/injuries.
func (h *ProfileHandler) AddInjury(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req InjuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, result, err := h.profileService.AddInjury(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, InjuryResponse{Profile: profile, Adaptation: result})
}

// UpdateInjuryStatus handles PATCH /profile/injuries/:index.
func (h *ProfileHandler) UpdateInjuryStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Injury index must be a number.")
		return
	}
	var req InjuryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, result, err := h.profileService.UpdateInjuryStatus(c.Request.Context(), userID, index, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, InjuryResponse{Profile: profile, Adaptation: result})
}
