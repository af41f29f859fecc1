package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"cybershield/internal/database"
	"cybershield/internal/middlewares"
	"cybershield/internal/repositories"
	"cybershield/internal/services"
)

type Server struct {
	port            int
	httpServer      *http.Server
	db              database.Service
	authService     services.AuthService
	userService     services.UserService
	campaignService services.CampaignService
	blogService     services.BlogService
	resourceService services.ResourceService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewServer() *Server {
	portStr := os.Getenv("PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatal().Err(err).Str("port", portStr).Msgf("Invalid PORT environment variable. Using default 8080.")
		port = 8080
	}

	db := database.New()

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database indexes")
	}

	userRepo := repositories.NewUserRepository(db)
	campaignRepo := repositories.NewCampaignRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)

	emailService := services.NewEmailService()

	s := &Server{
		port:            port,
		db:              db,
		authService:     services.NewAuthService(userRepo, emailService),
		userService:     services.NewUserService(userRepo),
		campaignService: services.NewCampaignService(campaignRepo),
		blogService:     services.NewBlogService(blogRepo),
		resourceService: services.NewResourceService(resourceRepo),
		authMiddleware:  middlewares.NewAuthMiddleware(userRepo),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
