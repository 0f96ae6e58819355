package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdaptationHandler exposes one endpoint per adaptation trigger.
type AdaptationHandler struct {
	adaptationService service.AdaptationService
}

func NewAdaptationHandler(adaptationService service.AdaptationService) *AdaptationHandler {
	return &AdaptationHandler{adaptationService: adaptationService}
}

type MissedWorkoutsRequest struct {
	WorkoutIDs []string `json:"workoutIds" binding:"required,min=1"`
}

type IntensityRequest struct {
	Direction planning.Direction `json:"direction" binding:"required,oneof=harder easier"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type ScheduleRequest struct {
	AvailableDays []string `json:"availableDays" binding:"required,min=1"`
}

type TimelineRequest struct {
	// EndDate is YYYY-MM-DD.
	EndDate string `json:"endDate" binding:"required"`
}

// adapt binds the request body into req and runs fn for the caller.
func adapt[T any](c *gin.Context, fn func(userID primitive.ObjectID, req *T) (*planning.Result, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	result, err := fn(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MissedWorkouts handles POST /plans/active/adaptations/missed.
func (h *AdaptationHandler) MissedWorkouts(c *gin.Context) {
	adapt(c, func(userID primitive.ObjectID, req *MissedWorkoutsRequest) (*planning.Result, error) {
		ids := make([]primitive.ObjectID, 0, len(req.WorkoutIDs))
		for _, hex := range req.WorkoutIDs {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid workout id %q", service.ErrValidation, hex)
			}
			ids = append(ids, id)
		}
		return h.adaptationService.AdaptMissedWorkouts(c.Request.Context(), userID, ids)
	})
}

// Intensity handles POST /plans/active/adaptations/intensity.
func (h *AdaptationHandler) Intensity(c *gin.Context) {
	adapt(c, func(userID primitive.ObjectID, req *IntensityRequest) (*planning.Result, error) {
		return h.adaptationService.AdaptIntensity(c.Request.Context(), userID, req.Direction)
	})
}

// Feedback handles POST /plans/active/adaptations/feedback.
func (h *AdaptationHandler) Feedback(c *gin.Context) {
	adapt(c, func(userID primitive.ObjectID, req *FeedbackRequest) (*planning.Result, error) {
		return h.adaptationService.AdaptFeedback(c.Request.Context(), userID, req.Feedback)
	})
}

// Schedule handles POST /plans/active/adaptations/schedule.
func (h *AdaptationHandler) Schedule(c *gin.Context) {
	adapt(c, func(userID primitive.ObjectID, req *ScheduleRequest) (*planning.Result, error) {
		availability, err := domain.ParseAvailability(req.AvailableDays)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrValidation, err)
		}
		return h.adaptationService.AdaptSchedule(c.Request.Context(), userID, availability)
	})
}

// Injury handles POST /plans/active/adaptations/injury. The injury is not
// recorded on the profile; POST /profile/injuries does both.
func (h *AdaptationHandler) Injury(c *gin.Context) {
	adapt(c, func(userID primitive.ObjectID, req *InjuryRequest) (*planning.Result, error) {
		return h.adaptationService.AdaptInjury(c.Request.Context(), userID, req.toDomain())
	})
}

// Timeline handles POST /plans/active/adaptations/timeline.
func (h *AdaptationHandler) Timeline(c *gin.Context) {
	adapt(c, func(userID primitive.ObjectID, req *TimelineRequest) (*planning.Result, error) {
		end, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end date must be YYYY-MM-DD", service.ErrValidation)
		}
		return h.adaptationService.AdaptTimeline(c.Request.Context(), userID, end)
	})
}

// ListAdaptations handles GET /plans/active/adaptations.
func (h *AdaptationHandler) ListAdaptations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.adaptationService.ListAdaptations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []domain.PlanAdaptation{}
	}
	c.JSON(http.StatusOK, list)
}
