package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gatherly/api/internal/models"
	"github.com/gatherly/api/internal/services"
	"github.com/gin-gonic/gin"
)

// GetProfile resolves an ambiguous id against both profile collections. An
// unmatched id is a 404, not a server error.
func GetProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("profile ID is required"))
			return
		}

		profile, err := p.Resolve(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if profile == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("profile not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

func UpdateProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("profile ID is required"))
			return
		}

		claims, ok := getClaims(c)
		if !ok {
			return
		}
		if !claims.IsOwner(id) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only update your own profile"))
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		// Identity-bound fields never change through this endpoint.
		delete(fields, "_id")
		delete(fields, "id")
		delete(fields, "email")
		delete(fields, "profile_type")
		delete(fields, "user_account_id")

		updated, err := p.UpdateProfile(c.Request.Context(), id, fields)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Profile updated successfully"))
	}
}

func UploadAvatar(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}

		var req struct {
			ImageData string `json:"image_data" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		avatarURL, err := p.UploadAvatar(c.Request.Context(), claims.UserID, req.ImageData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"avatar_url": avatarURL}, "Avatar updated successfully"))
	}
}

func UploadPortfolio(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}
		if !claims.IsProvider() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only providers can upload portfolio images"))
			return
		}

		var req struct {
			Images []string `json:"images" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		portfolio, err := p.UploadPortfolioImages(c.Request.Context(), claims.UserID, req.Images)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"portfolio_images": portfolio}, "Portfolio updated successfully"))
	}
}

// ListProviders backs the provider discovery page.
func ListProviders(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := c.DefaultQuery("limit", "10")
		offset := c.DefaultQuery("offset", "0")
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}
		offsetInt, err := strconv.Atoi(offset)
		if err != nil || offsetInt < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
			return
		}

		providers, total, err := p.ListProviders(c.Request.Context(), offsetInt, limitInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(providers, page, limitInt, total))
	}
}
