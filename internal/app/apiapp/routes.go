package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/posdenous/kinza-backend/internal/config"
	"github.com/posdenous/kinza-backend/internal/domain/enums"
	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	eventssvc "github.com/posdenous/kinza-backend/internal/services/events"
	mediasvc "github.com/posdenous/kinza-backend/internal/services/media"
	modsvc "github.com/posdenous/kinza-backend/internal/services/moderation"
	profilesvc "github.com/posdenous/kinza-backend/internal/services/profiles"
	"github.com/posdenous/kinza-backend/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager     *authsvc.JWTManager
	Classifier     *modsvc.Classifier
	EventService   *eventssvc.Service
	ProfileService *profilesvc.Service
	MediaService   *mediasvc.Service
	ReviewQueue    handlers.ReviewQueue
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	configHandler := handlers.NewConfigHandler(deps.Config)
	authHandler := handlers.NewAuthHandler(deps.JWTManager, deps.Config.Env)
	eventsHandler := handlers.NewEventsHandler(deps.EventService)
	moderationHandler := handlers.NewModerationHandler(deps.Classifier)
	moderationHandler.AttachQueue(deps.ReviewQueue)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)

	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)
	adminMW := RequireRole(enums.RoleAdmin)

	r.Get("/healthz", healthHandler.Get)
	r.Get("/config", configHandler.Handle)
	r.Post("/auth/dev_token", authHandler.DevToken)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Handle)

		r.With(authMW).Post("/events", eventsHandler.Create)
		r.With(authMW).Get("/events", eventsHandler.List)
		r.With(authMW).Post("/events/{id}/comments", eventsHandler.Comment)
		r.With(authMW).Post("/events/{id}/images", mediaHandler.Upload)
		r.With(authMW).Get("/events/{id}/images", mediaHandler.List)

		r.With(authMW).Post("/moderation/check", moderationHandler.Check)
		r.With(authMW, adminMW).Get("/moderation/queue", moderationHandler.Queue)
		r.With(authMW, adminMW).Post("/moderation/queue/{id}/resolve", moderationHandler.Resolve)

		r.With(authMW).Put("/profile/bio", profileHandler.UpdateBio)
	})
}
