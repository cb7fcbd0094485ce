package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gatherly/api/internal/ai"
	"github.com/gatherly/api/internal/hub"
	"github.com/gatherly/api/internal/models"
	"github.com/gatherly/api/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	UserService    *services.UserService
	ProfileService *services.ProfileService
	EventService   *services.EventService
	OfferService   *services.OfferService
	ChatService    *services.ChatService
	ReviewService  *services.ReviewService
	AIClient       *ai.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
	aiEndpoint, aiAPIKey string,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)
	messageHub := hub.NewHub()

	profileService := services.NewProfileService(mongoRepo, logger)
	userService := services.NewUserService(supa, mongoRepo)
	eventService := services.NewEventService(mongoRepo, mongoRepo)
	offerService := services.NewOfferService(mongoRepo, mongoRepo, mongoRepo)
	chatService := services.NewChatService(mongoRepo, mongoRepo, messageHub)
	reviewService := services.NewReviewService(mongoRepo, mongoRepo)
	aiClient := ai.NewClient(aiEndpoint, aiAPIKey)

	return &Container{
		Logger:         logger,
		Cloudinary:     cld,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		UserService:    userService,
		ProfileService: profileService,
		EventService:   eventService,
		OfferService:   offerService,
		ChatService:    chatService,
		ReviewService:  reviewService,
		AIClient:       aiClient,
	}
}
