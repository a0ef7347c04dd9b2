package handler

import (
	"database/sql"

	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/events"
	"postboard/internal/middleware"
	"postboard/internal/observability"
	"postboard/internal/post"
	"postboard/internal/session"
	"postboard/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rabbitmq/amqp091-go"
)

// SetupHandler initializes all dependencies and routes.
func SetupHandler(db *sql.DB, conn *amqp091.Connection, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	// Must be registered before the routes or gin will not wrap them.
	if observability.GlobalMetrics != nil {
		r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))
	}

	publisher := events.NewPublisher(conn)

	// Repositories
	userRepo := user.NewUserRepository()
	postRepo := post.NewPostRepository()
	sessionRepo := session.NewSessionRepository()

	// Services
	sessionService := session.NewSessionService(sessionRepo, db, cache.NewSessionCache(redisClient))
	userService := user.NewUserService(userRepo, db, publisher)
	postService := post.NewPostService(postRepo, db, cache.NewPostCache(redisClient), publisher)

	// Controllers
	userController := user.NewUserController(userService, sessionService)
	postController := post.NewPostController(postService)

	setupRoutes(r, userController, postController, sessionService, redisClient)

	return r
}

// setupRoutes configures all application routes.
func setupRoutes(r *gin.Engine, userCtrl *user.UserController, postCtrl *post.PostController, sessions session.SessionServiceInterface, redisClient *redis.Client) {
	credentialLimiter := middleware.RateLimiterMiddleware(redisClient, middleware.StrictRateLimiter())

	// Public routes
	r.POST("/users", credentialLimiter, userCtrl.Register)
	r.GET("/users/:id", userCtrl.GetUser)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", credentialLimiter, userCtrl.Login)
		authGroup.POST("/logout", userCtrl.Logout)
	}

	r.GET("/posts", postCtrl.ListPosts)
	r.GET("/posts/:id", postCtrl.GetPost)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(sessions))
	{
		protected.PUT("/users/:id", userCtrl.UpdateUser)
		protected.POST("/posts", postCtrl.CreatePost)
		protected.PUT("/posts/:id", postCtrl.UpdatePost)
		protected.DELETE("/posts/:id", postCtrl.DeletePost)
	}
}
