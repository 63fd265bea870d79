package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"

	"github.com/cppla/postbox/config"
	"github.com/cppla/postbox/controllers"
	"github.com/cppla/postbox/middleware"
	"github.com/cppla/postbox/store"
	"github.com/cppla/postbox/utils"
)

// SetupRouter wires routes, middlewares, and controllers around the given stores.
func SetupRouter(users *store.UserStore, posts *store.PostStore) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file (stdout when GinPath is empty)
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	r.Use(utils.RequestID())
	if err == nil {
		r.Use(ginzap.GinzapWithConfig(gl, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			Context:    utils.RequestIDFields,
		}))
		r.Use(ginzap.RecoveryWithZap(gl, true))
	} else {
		utils.Sugar.Warnf("gin logger init failed, falling back to default recovery: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(users)
	userController := controllers.NewUserController(users)
	postController := controllers.NewPostController(posts, cfg.UploadDir)

	public := r.Group("")
	public.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	public.POST("/register", authController.Register)
	public.POST("/login", authController.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/logout", authController.Logout)

	protected.GET("/users", userController.ListUsers)
	protected.GET("/users/:id", userController.GetUser)
	protected.GET("/activeUsers", userController.ListActiveUsers)

	protected.GET("/posts", postController.ListPosts)
	protected.POST("/posts", postController.CreatePost)
	protected.DELETE("/posts", postController.DeleteAllPosts)
	protected.GET("/posts/:id", postController.GetPost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.PUT("/posts/uploadFile/:id", postController.UploadFile)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
