package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/autoscribeHQ/autoscribe/internal/db"
	"github.com/autoscribeHQ/autoscribe/internal/middleware"
	"github.com/autoscribeHQ/autoscribe/internal/recorder"
)

func New(database *db.DB, mgr *recorder.Manager, redisOpt asynq.RedisClientOpt) *gin.Engine {
	r := gin.Default()

	// CORS middleware; the in-page instrumentation posts events from
	// whatever origin is being recorded.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.Auth())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		sqlDB, _ := database.DB.DB()
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "database": "down", "error": err.Error()})
			return
		}

		queues := "up"
		inspector := asynq.NewInspector(redisOpt)
		if _, err := inspector.Queues(); err != nil {
			// The API stays usable without the worker queue; archival
			// just won't happen until redis is back.
			queues = "down"
		}

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "up",
			"queues":   queues,
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		recorder.RegisterRoutes(v1, recorder.Dependencies{
			Manager: mgr,
			Store:   recorder.NewStore(database.DB),
		})
	}

	return r
}
