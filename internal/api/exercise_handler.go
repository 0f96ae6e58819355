package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name              string               `json:"name" binding:"required"`
	Description       string               `json:"description"`
	Disciplines       []domain.Discipline  `json:"disciplines" binding:"required,min=1,dive,oneof=endurance strength hybrid"`
	Difficulty        domain.Difficulty    `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	SessionTypes      []domain.SessionType `json:"sessionTypes"`
	MovementPatterns  []string             `json:"movementPatterns"`
	Contraindications []string             `json:"contraindications"`
	DurationBased     bool                 `json:"durationBased"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                string               `json:"id"`
	CreatedBy         string               `json:"createdBy,omitempty"`
	Name              string               `json:"name"`
	Description       string               `json:"description,omitempty"`
	Disciplines       []domain.Discipline  `json:"disciplines"`
	Difficulty        domain.Difficulty    `json:"difficulty"`
	SessionTypes      []domain.SessionType `json:"sessionTypes,omitempty"`
	MovementPatterns  []string             `json:"movementPatterns,omitempty"`
	Contraindications []string             `json:"contraindications,omitempty"`
	DurationBased     bool                 `json:"durationBased"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		ID:                ex.ID.Hex(),
		Name:              ex.Name,
		Description:       ex.Description,
		Disciplines:       ex.Disciplines,
		Difficulty:        ex.Difficulty,
		SessionTypes:      ex.SessionTypes,
		MovementPatterns:  ex.MovementPatterns,
		Contraindications: ex.Contraindications,
		DurationBased:     ex.DurationBased,
		CreatedAt:         ex.CreatedAt,
	}
	if !ex.CreatedBy.IsZero() {
		resp.CreatedBy = ex.CreatedBy.Hex()
	}
	return resp
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func exerciseQuery(c *gin.Context) repository.ExerciseQuery {
	return repository.ExerciseQuery{
		Discipline:  domain.Discipline(c.Query("discipline")),
		Difficulty:  domain.Difficulty(c.Query("difficulty")),
		SessionType: domain.SessionType(c.Query("sessionType")),
	}
}

// CreateExercise handles POST /exercises (coach only).
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), coachID, &domain.Exercise{
		Name:              req.Name,
		Description:       req.Description,
		Disciplines:       req.Disciplines,
		Difficulty:        req.Difficulty,
		SessionTypes:      req.SessionTypes,
		MovementPatterns:  req.MovementPatterns,
		Contraindications: req.Contraindications,
		DurationBased:     req.DurationBased,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises handles GET /exercises?discipline=&difficulty=&sessionType=.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), exerciseQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ListSafeExercises handles GET /exercises/safe?injury=knee&injury=impact.
func (h *ExerciseHandler) ListSafeExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListSafeExercises(c.Request.Context(), c.QueryArray("injury"), exerciseQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise handles GET /exercises/:id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID %q.", c.Param("id")))
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}
