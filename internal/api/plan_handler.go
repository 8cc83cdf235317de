package api

import (
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PlanHandler struct {
	planService service.PlanService
	images      *storage.ImageResolver
	log         logrus.FieldLogger
}

func NewPlanHandler(planService service.PlanService, images *storage.ImageResolver, log logrus.FieldLogger) *PlanHandler {
	return &PlanHandler{planService: planService, images: images, log: log}
}

type listPlansRequest struct {
	UserID string `json:"userId"`
}

// ListPlans returns the authenticated user's plans, newest first. A userId in
// the query or body is accepted for older clients but must name the token's
// own user.
// @Router /api/auth/plans [post]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}

	requested := strings.TrimSpace(c.Query("userId"))
	if requested == "" && c.Request.ContentLength != 0 {
		var body listPlansRequest
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			abortWithError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		requested = strings.TrimSpace(body.UserID)
	}
	if requested != "" && requested != userID {
		abortWithError(c, http.StatusBadRequest, "userId does not match the authenticated user")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUserID) {
			abortWithError(c, http.StatusBadRequest, "Invalid userId")
			return
		}
		h.log.WithError(err).WithField("user_id", userID).Error("Failed to list plans")
		abortWithError(c, http.StatusInternalServerError, "Internal Server error")
		return
	}

	for i := range plans {
		plans[i].Image = h.images.ResolveImageURL(c.Request.Context(), plans[i].Image)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": plans})
}
