package main

import (
	"net/http"
	"os"
	"time"

	"authcore/api/handler"
	apiMiddleware "authcore/api/middleware"
	"authcore/api/routes"
	"authcore/config"
	"authcore/internal/repository"
	"authcore/internal/service"
	"authcore/internal/storage"
	"authcore/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	accessSecret := []byte(os.Getenv("JWT_SECRET"))
	issuer := os.Getenv("JWT_ISSUER")
	if len(accessSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	accessManager := utils.JWTManager{
		Secret:         accessSecret,
		Issuer:         issuer,
		AccessTokenTTL: 15 * time.Minute,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	authConfig := service.AuthConfig{
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      30 * 24 * time.Hour,
		VerificationTokenTTL: time.Hour,
		ResetTokenTTL:        time.Hour,
		TwoFactorCodeTTL:     5 * time.Minute,
		TotpIssuer:           os.Getenv("TOTP_ISSUER"),
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	confirmationRepo := repository.NewTwoFactorConfirmationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	passwordHasher := service.BcryptPasswordHasher{}
	clock := service.RealClock{}

	emailSender := service.NewResendEmailSender(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("EMAIL_FROM"),
		os.Getenv("APP_BASE_URL"),
	)

	var avatarStore service.AvatarStore
	if bucket := os.Getenv("AVATAR_BUCKET"); bucket != "" {
		s3Client, err := storage.NewS3Client(storage.S3Config{
			Region:      os.Getenv("AWS_REGION"),
			AccessKeyID: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
			EndpointURL: os.Getenv("AWS_ENDPOINT_URL"),
		})
		if err != nil {
			logger.WithError(err).Fatal("s3 client")
		}
		avatarStore = storage.NewAvatarStore(s3Client, bucket)
	}

	tokenService := service.NewTokenService(tokenRepo, clock, authConfig)
	totpService := service.NewTotpService(userRepo, confirmationRepo, service.NewTotpProvider(), authConfig)

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		confirmationRepo,
		auditRepo,
		tokenService,
		totpService,
		emailSender,
		passwordHasher,
		accessIssuer,
		clock,
		authConfig,
	)
	settingsService := service.NewSettingsService(userRepo, auditRepo, avatarStore, passwordHasher)

	authHandler := handler.NewAuthHandler(authService, validate, logger)
	authHandler.CookieDomain = os.Getenv("COOKIE_DOMAIN")
	authHandler.SecureCookies = os.Getenv("COOKIE_SECURE") != "false"
	totpHandler := handler.NewTotpHandler(totpService, validate, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, validate, logger)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	app.Use(routes.NewSessionGate().Middleware())

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager}
	router := routes.NewRouter(app, authHandler, totpHandler, settingsHandler, authMiddleware)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
