package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hyeonss0417/bulletin-board/config"
	"github.com/hyeonss0417/bulletin-board/controllers"
	"github.com/hyeonss0417/bulletin-board/graphql"
	"github.com/hyeonss0417/bulletin-board/middleware"
	"github.com/hyeonss0417/bulletin-board/services"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// SetupRouter wires routes, middlewares, services, and both transports.
func SetupRouter(db *gorm.DB) (*gin.Engine, error) {
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
	r.Use(middleware.RequestID())
	r.Use(utils.GinZap())
	r.Use(utils.RecoveryWithZap())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	userService := services.NewUserService(db)
	postService := services.NewPostService(db)
	userController := controllers.NewUserController(userService)
	postController := controllers.NewPostController(postService)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	users.POST("", middleware.RateLimitMiddleware(), userController.SignUp)
	users.POST("/sign-in", middleware.RateLimitMiddleware(), userController.SignIn)
	users.GET("", userController.ListUsers)
	users.GET("/:id", userController.GetUser)
	users.GET("/:id/posts", userController.GetUserPosts)
	users.GET("/:id/comments", userController.GetUserComments)

	posts := r.Group("/posts")
	posts.GET("", postController.ListPosts)
	posts.GET("/:id", postController.GetPost)
	posts.GET("/:id/comments", postController.ListComments)

	protected := r.Group("/posts")
	protected.Use(middleware.AuthRequired(db))
	protected.POST("", postController.CreatePost)
	protected.PATCH("/:id", postController.UpdatePost)
	protected.DELETE("/:id", postController.DeletePost)
	protected.POST("/:id/comments", postController.CreateComment)
	protected.PATCH("/:id/comments/:commentId", postController.UpdateComment)
	protected.DELETE("/:id/comments/:commentId", postController.DeleteComment)

	schema, err := graphql.NewSchema(userService, postService)
	if err != nil {
		return nil, err
	}
	r.POST("/graphql", middleware.OptionalAuth(db), graphql.Handler(schema))

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r, nil
}
