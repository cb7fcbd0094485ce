package routes

import (
	"github.com/gatherly/api/internal/container"
	"github.com/gatherly/api/internal/handlers"
	"github.com/gatherly/api/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "gatherly-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.SignUp(container.UserService))
		v1.POST("/login", handlers.Login(container.UserService))
		v1.POST("/refresh", handlers.RefreshSession(container.UserService))
		v1.POST("/logout", handlers.Logout())
		v1.GET("/username-available", handlers.CheckUsername(container.ProfileService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.ProfileService, container.Logger))

	profileRoutes := protected.Group("/profiles")
	{
		profileRoutes.GET("/:id", handlers.GetProfile(container.ProfileService))
		profileRoutes.PATCH("/:id", handlers.UpdateProfile(container.ProfileService))
		profileRoutes.POST("/avatar", handlers.UploadAvatar(container.ProfileService))
		profileRoutes.POST("/portfolio", handlers.UploadPortfolio(container.ProfileService))
	}
	protected.GET("/providers", handlers.ListProviders(container.ProfileService))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/", handlers.ListEvents(container.EventService))
		eventRoutes.GET("/mine", handlers.ListMyEvents(container.EventService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(container.EventService))
		eventRoutes.POST("/:id/like", handlers.LikeEvent(container.EventService))
		eventRoutes.POST("/:id/comments", handlers.AddComment(container.EventService))
		eventRoutes.GET("/:id/comments", handlers.ListComments(container.EventService))
	}

	offerRoutes := protected.Group("/offers")
	{
		offerRoutes.POST("/", handlers.SubmitOffer(container.OfferService))
		offerRoutes.PATCH("/:id/status", handlers.SetOfferStatus(container.OfferService))
		offerRoutes.GET("/received", handlers.ListReceivedOffers(container.OfferService))
		offerRoutes.GET("/sent", handlers.ListSentOffers(container.OfferService))
	}

	conversationRoutes := protected.Group("/conversations")
	{
		conversationRoutes.POST("/", handlers.StartConversation(container.ChatService))
		conversationRoutes.GET("/", handlers.ListConversations(container.ChatService))
		conversationRoutes.GET("/:id/messages", handlers.MessageHistory(container.ChatService))
		conversationRoutes.POST("/:id/messages", handlers.SendMessage(container.ChatService))
		conversationRoutes.POST("/:id/read", handlers.MarkConversationRead(container.ChatService))
		conversationRoutes.GET("/:id/stream", handlers.StreamMessages(container.ChatService))
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.POST("/", handlers.CreateReview(container.ReviewService))
		reviewRoutes.GET("/:entityId", handlers.ListEntityReviews(container.ReviewService))
	}

	aiRoutes := protected.Group("/ai")
	{
		aiRoutes.POST("/recommend-providers", handlers.RecommendProviders(container.AIClient))
		aiRoutes.POST("/generate-description", handlers.GenerateEventDescription(container.AIClient))
	}

	return r
}
