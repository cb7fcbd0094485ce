package handlers

import (
	"net/http"
	"os"

	"github.com/gatherly/api/internal/helpers"
	"github.com/gatherly/api/internal/models"
	"github.com/gatherly/api/internal/services"
	"github.com/gin-gonic/gin"
)

// getClaims pulls the enhanced claims placed on the context by AuthMiddleware.
func getClaims(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := userClaims.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}

func SignUp(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := u.SignUp(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(profile, "Account created successfully"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		tokenRes, err := u.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "message": "invalid email or password"})
			return
		}

		if tokenRes == nil || tokenRes.AccessToken == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid token response"})
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		// Access token - expires in 1 hour (3600 seconds)
		c.SetCookie(
			"access_token",
			tokenRes.AccessToken,
			tokenRes.ExpiresIn,
			"/",
			"", // let Gin pick current domain
			isProduction,
			true,
		)

		// Refresh token - expires in 30 days
		c.SetCookie(
			"refresh_token",
			tokenRes.RefreshToken,
			3600*24*30,
			"/",
			"",
			isProduction,
			true,
		)

		// Return user info but not tokens
		c.JSON(http.StatusOK, gin.H{
			"user": tokenRes.User,
		})
	}
}

// RefreshSession exchanges the refresh token cookie for a new token pair.
// The middleware refreshes transparently on expired access tokens; this
// endpoint lets clients rotate proactively.
func RefreshSession(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("refresh token not found"))
			return
		}

		tokenRes, err := u.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
			return
		}
		if tokenRes == nil || tokenRes.AccessToken == "" {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid refresh response"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
		c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

		c.JSON(http.StatusOK, gin.H{
			"user": tokenRes.User,
		})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out successfully",
		})
	}
}

// CheckUsername reports whether a candidate username is taken. Public so the
// signup form can query it. Internal errors surface as "not taken" to keep
// signup available during outages.
func CheckUsername(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("username query parameter is required"))
			return
		}

		taken := p.IsUsernameTaken(c.Request.Context(), username)
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"isTaken": taken}, ""))
	}
}
