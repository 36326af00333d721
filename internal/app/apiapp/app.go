package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/posdenous/kinza-backend/internal/config"
	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	s3infra "github.com/posdenous/kinza-backend/internal/infra/s3"
	"github.com/posdenous/kinza-backend/internal/jobs/cleanup"
	pgrepo "github.com/posdenous/kinza-backend/internal/repo/postgres"
	redrepo "github.com/posdenous/kinza-backend/internal/repo/redis"
	accesssvc "github.com/posdenous/kinza-backend/internal/services/access"
	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	eventssvc "github.com/posdenous/kinza-backend/internal/services/events"
	mediasvc "github.com/posdenous/kinza-backend/internal/services/media"
	modsvc "github.com/posdenous/kinza-backend/internal/services/moderation"
	profilesvc "github.com/posdenous/kinza-backend/internal/services/profiles"
	ratesvc "github.com/posdenous/kinza-backend/internal/services/rate"
)

type App struct {
	cfg         config.Config
	logger      *zap.Logger
	server      *http.Server
	postgres    *pgxpool.Pool
	redis       *goredis.Client
	s3          *minio.Client
	httpRouter  http.Handler
	cleanupJob  *cleanup.Job
	stopCleanup context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)
	eventRepo := pgrepo.NewEventRepo(pool)
	commentRepo := pgrepo.NewCommentRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	reviewRepo := pgrepo.NewReviewRepo(pool)
	mediaRepo := pgrepo.NewMediaRepo(pool)

	cities := make([]model.City, 0, len(cfg.Cities))
	for _, city := range cfg.Cities {
		cities = append(cities, model.City{ID: city.ID, Name: city.Name})
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	accessService := accesssvc.NewService(cities)

	classifier := modsvc.NewClassifier(classifierConfig(cfg.Moderation), accessService)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Rate.SubmissionsPerMinute, cfg.Rate.SubmissionsPer10Sec)
	classifier.AttachRateLimiter(ratesvc.NewSubmissionGuard(rateLimiter))

	validator := eventssvc.NewValidator(cities, eventssvc.Limits{
		MaxFutureWindow:     cfg.Events.MaxFutureWindow,
		MaxDuration:         cfg.Events.MaxDuration,
		WarnMaxParticipants: cfg.Events.WarnMaxParticipants,
		WarnPrice:           cfg.Events.WarnPrice,
		WarnMinDescription:  cfg.Events.WarnMinDescription,
	})
	eventService := eventssvc.NewService(validator, classifier, accessService, eventRepo, commentRepo, reviewRepo)
	profileService := profilesvc.NewService(profileRepo, classifier, reviewRepo)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(mediaRepo, mediaStorage)

	var cleanupJob *cleanup.Job
	if pool != nil {
		cleanupJob = cleanup.NewReviewCleanupJob(reviewRepo, cfg.Moderation.ReviewRetention, log)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		JWTManager:     jwtManager,
		Classifier:     classifier,
		EventService:   eventService,
		ProfileService: profileService,
		MediaService:   mediaService,
		ReviewQueue:    reviewRepo,
		Logger:         log,
		Config:         cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
		cleanupJob: cleanupJob,
	}, nil
}

func classifierConfig(mod config.ModerationConfig) modsvc.Config {
	maxLengths := make(map[enums.ContentType]int, len(mod.MaxLengths))
	for name, limit := range mod.MaxLengths {
		if contentType, err := enums.ParseContentType(name); err == nil {
			maxLengths[contentType] = limit
		}
	}

	return modsvc.Config{
		PlatformDomain:      mod.PlatformDomain,
		Profanity:           mod.Profanity,
		SpamPhrases:         mod.SpamPhrases,
		ViolenceTerms:       mod.ViolenceTerms,
		AdultTerms:          mod.AdultTerms,
		DiscriminationTerms: mod.DiscriminationTerms,
		MaxLengths:          maxLengths,
		MinLength:           mod.MinLength,
		WordRepeatLimit:     mod.WordRepeatLimit,
		UppercaseRatio:      mod.UppercaseRatio,
		UppercaseMinLength:  mod.UppercaseMinLength,
	}
}

func (a *App) Run() error {
	if a.cleanupJob != nil {
		jobCtx, cancel := context.WithCancel(context.Background())
		a.stopCleanup = cancel
		go a.cleanupJob.Start(jobCtx)
	}

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
