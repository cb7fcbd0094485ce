package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gatherly/api/internal/models"
	"github.com/gatherly/api/internal/services"
	"github.com/gin-gonic/gin"
)

func SubmitOffer(o *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}
		if !claims.IsProvider() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only service providers can submit offers"))
			return
		}

		var req struct {
			EventID     string  `json:"eventID" binding:"required"`
			Description string  `json:"description" binding:"required"`
			Price       float64 `json:"price" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		offer, err := o.SubmitOffer(c.Request.Context(), req.EventID, claims.UserID, req.Description, req.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(offer, "Offer submitted successfully"))
	}
}

// SetOfferStatus accepts or rejects a submitted offer. An offer already in a
// terminal state is reported as a conflict, never silently ignored.
func SetOfferStatus(o *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offerID := strings.TrimSpace(c.Param("id"))
		if offerID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("offer ID is required"))
			return
		}

		claims, ok := getClaims(c)
		if !ok {
			return
		}

		var req struct {
			Status models.OfferStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		offer, err := o.SetStatus(c.Request.Context(), offerID, claims.UserID, req.Status)
		if err != nil {
			if errors.Is(err, models.ErrInvalidTransition) {
				c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(offer, "Offer status updated"))
	}
}

// ListReceivedOffers returns offers against the caller's events, with joined
// event and provider snapshots where they still resolve.
func ListReceivedOffers(o *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}

		views, err := o.ListReceived(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(views, ""))
	}
}

func ListSentOffers(o *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}

		views, err := o.ListSent(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(views, ""))
	}
}
