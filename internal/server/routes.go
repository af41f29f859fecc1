package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cybershield/internal/handlers"
	"cybershield/internal/middlewares"
	"cybershield/internal/utils"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.RateLimit)

	prom := middlewares.NewPrometheusMiddleware()
	r.Use(prom.Instrument)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.PathPrefix("/" + utils.UploadDir + "/").Handler(
		http.StripPrefix("/"+utils.UploadDir+"/", http.FileServer(http.Dir(utils.UploadDir))))

	s.registerAuthRoutes(r)
	s.registerUserRoutes(r)
	s.registerAdminRoutes(r)
	s.registerCampaignRoutes(r)
	s.registerBlogRoutes(r)
	s.registerResourceRoutes(r)

	return r
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService)

	r.HandleFunc("/api/auth/register", ah.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", ah.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/logout", ah.Logout).Methods("POST", "OPTIONS")

	r.Handle("/api/auth/send-verify-otp",
		s.authMiddleware.Authenticate(middlewares.OTPRateLimit(http.HandlerFunc(ah.SendVerifyOtp)))).Methods("POST", "OPTIONS")
	r.Handle("/api/auth/verify-account",
		middlewares.OTPRateLimit(http.HandlerFunc(ah.VerifyOtp))).Methods("POST", "OPTIONS")
	r.Handle("/api/auth/send-reset-otp",
		middlewares.OTPRateLimit(http.HandlerFunc(ah.SendResetOtp))).Methods("POST", "OPTIONS")
	r.Handle("/api/auth/reset-password",
		middlewares.OTPRateLimit(http.HandlerFunc(ah.ResetPassword))).Methods("POST", "OPTIONS")
}

func (s *Server) registerUserRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userService)

	r.Handle("/api/me", s.authMiddleware.Authenticate(http.HandlerFunc(uh.GetMyProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/me", s.authMiddleware.Authenticate(http.HandlerFunc(uh.UpdateMyProfile))).Methods("PATCH", "PUT", "OPTIONS")
	r.Handle("/api/me/password", s.authMiddleware.Authenticate(http.HandlerFunc(uh.UpdateMyPassword))).Methods("PUT", "OPTIONS")
}

func (s *Server) registerAdminRoutes(r *mux.Router) {
	adh := handlers.NewAdminHandler(s.userService, s.campaignService, s.blogService)

	admin := func(h http.HandlerFunc) http.Handler {
		return s.authMiddleware.Authenticate(middlewares.AdminOnly(h))
	}

	r.Handle("/api/admin/users", admin(adh.GetAllUsers)).Methods("GET", "OPTIONS")
	r.Handle("/api/admin/users/{id}/role", admin(adh.UpdateUserRole)).Methods("PUT", "OPTIONS")
	r.Handle("/api/admin/users/{id}", admin(adh.DeleteUser)).Methods("DELETE", "OPTIONS")

	r.Handle("/api/admin/campaigns/pending", admin(adh.GetPendingCampaigns)).Methods("GET", "OPTIONS")
	r.Handle("/api/admin/campaigns/{id}/approve", admin(adh.ApproveCampaign)).Methods("PUT", "OPTIONS")
	r.Handle("/api/admin/campaigns/{id}/status", admin(adh.UpdateCampaignStatus)).Methods("PUT", "OPTIONS")

	r.Handle("/api/admin/blogs/pending", admin(adh.GetPendingBlogs)).Methods("GET", "OPTIONS")
	r.Handle("/api/admin/blogs/{id}/approve", admin(adh.ApproveBlog)).Methods("PUT", "OPTIONS")
	r.Handle("/api/admin/blogs/{id}/status", admin(adh.UpdateBlogStatus)).Methods("PUT", "OPTIONS")
}

func (s *Server) registerCampaignRoutes(r *mux.Router) {
	cph := handlers.NewCampaignHandler(s.campaignService)

	r.HandleFunc("/api/campaigns", cph.GetCampaigns).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/campaigns/{id}", cph.GetCampaignByID).Methods("GET", "OPTIONS")
	r.Handle("/api/campaigns", s.authMiddleware.Authenticate(http.HandlerFunc(cph.CreateCampaign))).Methods("POST", "OPTIONS")
	r.Handle("/api/campaigns/{id}", s.authMiddleware.Authenticate(http.HandlerFunc(cph.UpdateCampaign))).Methods("PUT", "OPTIONS")
	r.Handle("/api/campaigns/{id}", s.authMiddleware.Authenticate(http.HandlerFunc(cph.DeleteCampaign))).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerBlogRoutes(r *mux.Router) {
	bh := handlers.NewBlogHandler(s.blogService)

	r.HandleFunc("/api/blogs", bh.GetBlogs).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/blogs/{id}", bh.GetBlogByID).Methods("GET", "OPTIONS")
	r.Handle("/api/blogs", s.authMiddleware.Authenticate(http.HandlerFunc(bh.CreateBlog))).Methods("POST", "OPTIONS")
	r.Handle("/api/blogs/{id}", s.authMiddleware.Authenticate(http.HandlerFunc(bh.UpdateBlog))).Methods("PUT", "OPTIONS")
	r.Handle("/api/blogs/{id}", s.authMiddleware.Authenticate(http.HandlerFunc(bh.DeleteBlog))).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerResourceRoutes(r *mux.Router) {
	rh := handlers.NewResourceHandler(s.resourceService)

	r.HandleFunc("/api/resources", rh.GetResources).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/resources/{id}", rh.GetResourceByID).Methods("GET", "OPTIONS")
	r.Handle("/api/resources", s.authMiddleware.Authenticate(http.HandlerFunc(rh.CreateResource))).Methods("POST", "OPTIONS")
	r.Handle("/api/resources/{id}", s.authMiddleware.Authenticate(http.HandlerFunc(rh.UpdateResource))).Methods("PUT", "OPTIONS")
	r.Handle("/api/resources/{id}", s.authMiddleware.Authenticate(http.HandlerFunc(rh.DeleteResource))).Methods("DELETE", "OPTIONS")
}
