package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"eventplanner/config"
	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/calendar"
	"eventplanner/internal/adapters/email"
	"eventplanner/internal/adapters/forms"
	"eventplanner/internal/adapters/gemini"
	"eventplanner/internal/adapters/geocode"
	"eventplanner/internal/adapters/media"
	httpdelivery "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/services"
)

// buildHandler wires repositories, adapters and services into the HTTP router.
func buildHandler(cfg *config.Config, logger *slog.Logger, db *sql.DB) (http.Handler, error) {
	tx := postgres.NewTransactor(db)
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	editorRepo := postgres.NewEventEditorRepository(db)
	versionRepo := postgres.NewEventVersionRepository(db)
	editLogRepo := postgres.NewEditLogRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	emailLogRepo := postgres.NewEmailLogRepository(db)
	postRepo := postgres.NewSocialPostRepository(db)
	assetRepo := postgres.NewVisualAssetRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	upstream := &http.Client{Timeout: cfg.GenerationTimeout}
	generator, err := services.NewContentGateway(
		gemini.NewTextClient(upstream, gemini.DefaultBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel),
		gemini.NewImageClient(upstream, gemini.DefaultBaseURL, cfg.GeminiAPIKey, cfg.GeminiImageModel),
		logger,
	)
	if err != nil {
		return nil, err
	}
	geocoder := geocode.NewGoogleGeocoder(upstream, geocode.DefaultBaseURL, cfg.GoogleMapsAPIKey)
	formBuilder := forms.NewGoogleFormBuilder(upstream, forms.DefaultBaseURL, cfg.GoogleFormsAccessToken)
	files, err := media.NewFileStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return nil, err
	}

	timeouts := services.Timeouts{Request: cfg.ContextTimeout, Generation: cfg.GenerationTimeout}
	perms := services.NewPermissionEvaluator(editorRepo)
	editLogs := services.NewEditLogService(editLogRepo, perms, cfg.ContextTimeout)

	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(0), auth.NewJWTIssuer(cfg.JWTSecret),
		emailService, cfg.JWTExpiry, logger)
	eventService := services.NewEventService(services.EventDeps{
		Tx:        tx,
		Perms:     perms,
		Events:    eventRepo,
		Editors:   editorRepo,
		Versions:  versionRepo,
		Venues:    venueRepo,
		EditLogs:  editLogs,
		Generator: generator,
		Calendar:  calendar.NewICalRenderer("eventplanner"),
		Timeouts:  timeouts,
	})

	versionService := services.NewVersionService(tx, perms, eventRepo, versionRepo, editLogs, cfg.ContextTimeout)
	editorService := services.NewEditorService(tx, perms, editorRepo, userRepo, cfg.ContextTimeout)
	taskService := services.NewTaskService(tx, perms, eventRepo, taskRepo, generator, timeouts)
	venueService := services.NewVenueService(tx, perms, eventRepo, venueRepo, generator, geocoder, timeouts, logger)
	regService := services.NewRegistrationService(tx, perms, eventRepo, venueRepo, regRepo, generator, formBuilder, timeouts)
	invitationService := services.NewInvitationService(tx, perms, eventRepo, venueRepo, regRepo, emailLogRepo,
		generator, emailService, timeouts, logger)
	postService := services.NewSocialPostService(tx, perms, eventRepo, venueRepo, regRepo, postRepo, generator, timeouts)
	posterService := services.NewPosterService(perms, eventRepo, venueRepo, assetRepo, generator, files, timeouts)

	c := httpdelivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		Events:       controllers.NewEventController(logger, eventService),
		Versions:     controllers.NewVersionController(logger, versionService),
		EditLogs:     controllers.NewEditLogController(logger, editLogs),
		Editors:      controllers.NewEditorController(logger, editorService),
		Tasks:        controllers.NewTaskController(logger, taskService),
		Venues:       controllers.NewVenueController(logger, venueService),
		Registration: controllers.NewRegistrationController(logger, regService),
		Invitations:  controllers.NewInvitationController(logger, invitationService),
		SocialPosts:  controllers.NewSocialPostController(logger, postService),
		Posters:      controllers.NewPosterController(logger, posterService),
	}

	rc := httpdelivery.RouterConfig{
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}
	// Files are served locally only when the public URL is a path on this server.
	if strings.HasPrefix(cfg.MediaBaseURL, "/") {
		rc.MediaPrefix = strings.TrimSuffix(cfg.MediaBaseURL, "/") + "/"
		rc.Media = files.Handler()
	}
	return httpdelivery.NewRouter(c, rc), nil
}
