package server

import (
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"draw2photo-server/confs"
	"draw2photo-server/db"
	httpHandler "draw2photo-server/handlers/http"
	"draw2photo-server/repositories"
	"draw2photo-server/services"
	"draw2photo-server/usecases"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	cfg *confs.Config
}

func NewServer(cfg *confs.Config, database db.Database) *Server {
	gin.SetMode(cfg.GinMode)
	s := &Server{
		app: gin.Default(),
		db:  database,
		cfg: cfg,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	s.app.Use(cors.New(config))

	// Templates share a "now" helper so every page can show server time.
	s.app.SetFuncMap(template.FuncMap{
		"now": time.Now,
	})
	s.app.LoadHTMLGlob(filepath.Join(s.cfg.TemplatesDir, "*.html"))
	s.app.Static("/static", s.cfg.StaticDir)

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserSqliteRepository(s.db)

	// Initialize services and use cases
	tokens := services.NewTokenService(s.cfg.JWTSecret)
	transformer := services.NewStubTransformer()
	accounts := usecases.NewAccountUseCase(userRepo)

	// Initialize handlers
	pageHandler := httpHandler.NewPageHandler()
	authHandler := httpHandler.NewAuthHandler(accounts, tokens)
	generateHandler := httpHandler.NewGenerateHandler(transformer)

	// Identity resolves the current user on the routes that care who is
	// asking; anonymous requests pass through, present-but-invalid tokens
	// are rejected. The auth forms and logout stay reachable with a bad
	// cookie so a user can always recover a broken session.
	identity := httpHandler.Identity(tokens)

	s.app.GET("/", identity, pageHandler.Home)
	s.app.GET("/register", authHandler.RegisterForm)
	s.app.POST("/register", authHandler.Register)
	s.app.GET("/login", authHandler.LoginForm)
	s.app.POST("/login", authHandler.Login)
	s.app.GET("/generate", identity, generateHandler.GenerateForm)
	s.app.POST("/generate", identity, generateHandler.Generate)
	s.app.GET("/gallery", identity, pageHandler.Gallery)
	s.app.POST("/logout", authHandler.Logout)

	s.app.NoRoute(pageHandler.NotFound)
}

func (s *Server) Start() {
	if err := s.app.Run("0.0.0.0:" + s.cfg.Port); err != nil {
		panic(err)
	}
}
