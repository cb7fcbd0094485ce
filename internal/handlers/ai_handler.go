package handlers

import (
	"net/http"

	"github.com/gatherly/api/internal/ai"
	"github.com/gatherly/api/internal/models"
	"github.com/gin-gonic/gin"
)

// RecommendProviders proxies the event attributes to the prompt-completion
// service. Failures surface as a generic error; the client may simply
// re-invoke, there is no automatic retry.
func RecommendProviders(client *ai.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ai.RecommendationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		suggestions, err := client.RecommendProviders(c.Request.Context(), input)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.ErrorResponse("failed to generate recommendations"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"recommendedProviders": suggestions}, ""))
	}
}

func GenerateEventDescription(client *ai.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ai.DescriptionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		description, err := client.GenerateEventDescription(c.Request.Context(), input)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.ErrorResponse("failed to generate description"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"description": description}, ""))
	}
}
