package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/metalnews/backend/internal/config"
	"github.com/emilythestrangee/metalnews/backend/internal/database"
	"github.com/emilythestrangee/metalnews/backend/internal/handlers"
	"github.com/emilythestrangee/metalnews/backend/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      database.Service
	handler *handlers.Handler
}

func New(cfg *config.Config, logger *zap.Logger, db database.Service) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		handler: handlers.NewHandler(db.GetDB(), []byte(cfg.JWTSecret), logger),
	}
}

// NewServer creates and configures a new server
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) *http.Server {
	s := New(cfg, logger, db)

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(s.logger), gin.Recovery())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthHandler)

	h := s.handler
	auth := middleware.AuthMiddleware([]byte(s.cfg.JWTSecret))

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		api.GET("/home", h.Post.Home)

		// Articles and comments (public)
		api.GET("/posts", h.Post.GetPosts)
		api.GET("/posts/:slug", h.Post.GetPost)
		api.POST("/posts/:slug/comments", h.Comment.CreateComment)
		api.GET("/categories", h.Post.GetCategories)
		api.GET("/categories/:slug/posts", h.Post.GetCategoryPosts)

		// Music catalogue (public)
		api.GET("/albums", h.Music.GetAlbums)
		api.GET("/albums/:slug", h.Music.GetAlbum)
		api.GET("/bands/:slug", h.Music.GetBand)

		api.GET("/popular/:window", h.Vote.Popular)
		api.GET("/votes/:kind/:id", h.Vote.GetVotes)
		api.GET("/users/:id", h.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(auth)
		{
			protected.GET("/me", h.Auth.GetMe)
			protected.POST("/votes/:kind/:id/like", h.Vote.Like)
			protected.POST("/votes/:kind/:id/dislike", h.Vote.Dislike)
			protected.POST("/albums/:slug/reviews", h.Music.CreateReview)
		}

		// Staff routes
		staff := api.Group("")
		staff.Use(auth, middleware.RequireStaff())
		{
			staff.POST("/posts", h.Post.CreatePost)
			staff.PUT("/posts/:slug", h.Post.UpdatePost)
			staff.DELETE("/posts/:slug", h.Post.DeletePost)
			staff.DELETE("/comments/:id", h.Comment.DeleteComment)
			staff.POST("/categories", h.Post.CreateCategory)
			staff.POST("/styles", h.Music.CreateStyle)
			staff.POST("/labels", h.Music.CreateLabel)
			staff.POST("/bands", h.Music.CreateBand)
			staff.POST("/albums", h.Music.CreateAlbum)
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	stats := s.db.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
