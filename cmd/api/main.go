package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/medarchive-api/internal/config"
	"github.com/jwalitptl/medarchive-api/internal/email"
	accessHandler "github.com/jwalitptl/medarchive-api/internal/handler/access"
	authHandler "github.com/jwalitptl/medarchive-api/internal/handler/auth"
	filesHandler "github.com/jwalitptl/medarchive-api/internal/handler/files"
	healthHandler "github.com/jwalitptl/medarchive-api/internal/handler/health"
	recordHandler "github.com/jwalitptl/medarchive-api/internal/handler/record"
	userHandler "github.com/jwalitptl/medarchive-api/internal/handler/user"
	"github.com/jwalitptl/medarchive-api/internal/middleware"
	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository/postgres"
	"github.com/jwalitptl/medarchive-api/internal/router"
	accessService "github.com/jwalitptl/medarchive-api/internal/service/access"
	authService "github.com/jwalitptl/medarchive-api/internal/service/auth"
	recordService "github.com/jwalitptl/medarchive-api/internal/service/record"
	userService "github.com/jwalitptl/medarchive-api/internal/service/user"
	"github.com/jwalitptl/medarchive-api/internal/storage/localfs"
	pkgauth "github.com/jwalitptl/medarchive-api/pkg/auth"
	"github.com/jwalitptl/medarchive-api/pkg/logger"
	"github.com/jwalitptl/medarchive-api/pkg/security"
)

// registrarFunc adapts a plain route-registration function to router.Registrar.
type registrarFunc func(*gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize attachment storage
	store, err := localfs.NewStore(cfg.Storage.UploadsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload storage")
	}

	// Token denylist backs logout; without Redis tokens simply expire.
	denylist := pkgauth.NewNoopDenylist()
	if cfg.Redis.URL != "" {
		denylist, err = pkgauth.NewRedisDenylist(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}

	jwtSvc := pkgauth.NewJWTService(pkgauth.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Expiry:   time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
	}, denylist)

	hasher := security.NewBcryptHasher(0)

	emailSvc := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	accessRepo := postgres.NewAccessRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	referralRepo := postgres.NewReferralRepository(db)
	vaccinationRepo := postgres.NewVaccinationRepository(db)
	certificateRepo := postgres.NewCertificateRepository(db)

	// Initialize services
	accessSvc := accessService.NewService(accessRepo, userRepo)
	authSvc := authService.NewService(userRepo, hasher, jwtSvc, emailSvc, appLogger)
	userSvc := userService.NewService(userRepo, hasher, store)

	appointmentSvc := recordService.NewService(appointmentRepo, store, accessSvc, "appointments", appLogger)
	prescriptionSvc := recordService.NewService(prescriptionRepo, store, accessSvc, "prescriptions", appLogger)
	referralSvc := recordService.NewService(referralRepo, store, accessSvc, "referrals", appLogger)
	vaccinationSvc := recordService.NewService(vaccinationRepo, store, accessSvc, "vaccinations", appLogger)
	certificateSvc := recordService.NewService(certificateRepo, store, accessSvc, "certificates", appLogger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	doctorOnly := authMiddleware.RequireRole(model.RoleDoctor)

	// Initialize handlers
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewHandler(userSvc)
	accessH := accessHandler.NewHandler(accessSvc, doctorOnly)
	filesH := filesHandler.NewHandler(store, accessSvc)
	healthH := healthHandler.NewHandler(db)

	appointmentH := recordHandler.NewHandler(appointmentSvc, "appointments",
		(*model.AppointmentRequest).ToModel, doctorOnly)
	prescriptionH := recordHandler.NewHandler(prescriptionSvc, "prescriptions",
		(*model.PrescriptionRequest).ToModel, doctorOnly)
	referralH := recordHandler.NewHandler(referralSvc, "referrals",
		(*model.ReferralRequest).ToModel, doctorOnly)
	vaccinationH := recordHandler.NewHandler(vaccinationSvc, "vaccinations",
		(*model.VaccinationRequest).ToModel, doctorOnly)
	certificateH := recordHandler.NewHandler(certificateSvc, "certificates",
		(*model.CertificateRequest).ToModel, doctorOnly)

	// Setup router
	r := router.New(authMiddleware, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           middleware.DefaultCORSConfig(),
		MetricsPrefix:  "medarchive",
	})

	r.Setup(
		[]router.Registrar{authH, healthH},
		[]router.Registrar{
			registrarFunc(authH.RegisterProtectedRoutes),
			userH,
			accessH,
			filesH,
			appointmentH,
			prescriptionH,
			referralH,
			vaccinationH,
			certificateH,
		},
	)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
