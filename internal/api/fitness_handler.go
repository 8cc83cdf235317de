package api

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FitnessHandler serves plan generation.
type FitnessHandler struct {
	fitnessService service.FitnessService
	log            logrus.FieldLogger
}

func NewFitnessHandler(fitnessService service.FitnessService, log logrus.FieldLogger) *FitnessHandler {
	return &FitnessHandler{fitnessService: fitnessService, log: log}
}

// generationFailure is the response shape for one error type.
type generationFailure struct {
	status  int
	message string
}

// 4xx messages are specific; the 500 message stays generic.
var generationFailures = map[string]generationFailure{
	service.ErrorTypeTimeout: {
		http.StatusGatewayTimeout,
		"Request timeout. The AI service is taking too long to respond. Please try again.",
	},
	service.ErrorTypeServiceDisabled: {
		http.StatusServiceUnavailable,
		"AI service is currently unavailable. Please try again later.",
	},
	service.ErrorTypeRateLimit: {
		http.StatusTooManyRequests,
		"Too many requests to the AI service. Please wait a moment and try again.",
	},
	service.ErrorTypeNotFound: {
		http.StatusNotFound,
		service.ErrUserNotFound.Error(),
	},
	service.ErrorTypeUnknown: {
		http.StatusInternalServerError,
		"Failed to generate fitness program. Please try again.",
	},
}

// GenerateProgram godoc
// @Summary Generate a workout and diet plan
// @Accept json
// @Produce json
// @Param request body domain.GenerationRequest true "Biometrics and preferences"
// @Success 200 {object} gin.H "{success, data: {planId, workoutPlan, dietPlan}}"
// @Failure 400,404,429,500,503,504 {object} gin.H "{success: false, error, errorType}"
// @Router /api/fitness/generate-program [post]
func (h *FitnessHandler) GenerateProgram(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondGenerationError(c, http.StatusBadRequest, "Invalid request body", service.ErrorTypeValidation)
		return
	}

	result, err := h.fitnessService.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		errorType := service.ClassifyGenerationError(err)
		h.log.WithError(err).WithFields(logrus.Fields{
			"error_type": errorType,
			"user_id":    req.UserID,
			"request_id": c.GetString(ContextRequestIDKey),
		}).Error("Error generating fitness program")
		_ = c.Error(err)

		if errorType == service.ErrorTypeValidation {
			respondGenerationError(c, http.StatusBadRequest, err.Error(), errorType)
			return
		}
		f := generationFailures[errorType]
		respondGenerationError(c, f.status, f.message, errorType)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func respondGenerationError(c *gin.Context, status int, message, errorType string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":   false,
		"error":     message,
		"errorType": errorType,
	})
}
