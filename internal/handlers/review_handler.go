package handlers

import (
	"net/http"
	"strings"

	"github.com/gatherly/api/internal/models"
	"github.com/gatherly/api/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}

		var req struct {
			EntityID   string `json:"reviewedEntityId" binding:"required"`
			EntityType string `json:"reviewedEntityType" binding:"required,oneof=user event"`
			Rating     int    `json:"rating" binding:"required,min=1,max=5"`
			Comment    string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		review, err := r.CreateReview(c.Request.Context(), claims.UserID, req.EntityID, req.EntityType, req.Rating, req.Comment)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review created successfully"))
	}
}

// ListEntityReviews returns the raw reviews plus the rating aggregate the
// profile and event pages render.
func ListEntityReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID := strings.TrimSpace(c.Param("entityId"))
		if entityID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("entity ID is required"))
			return
		}

		reviews, summary, err := r.EntityReviews(c.Request.Context(), entityID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"reviews": reviews,
			"summary": summary,
		}, ""))
	}
}
