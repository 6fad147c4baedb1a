package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-nlpdocs/docs"
	"go-nlpdocs/handlers"
)

// Service is the extraction surface the HTTP API exposes.
type Service interface {
	handlers.Extractor
	docs.EntityRecognizer
	docs.Summarizer
}

func SetupRouter(svc Service, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Hello, welcome to go-nlpdocs!",
		})
	})

	api := r.Group("/api/nlpdocs")
	{
		api.POST("/extract", func(c *gin.Context) {
			handlers.Extract(c, svc)
		})
		api.POST("/documentation", func(c *gin.Context) {
			handlers.GenerateDocumentation(c, svc)
		})
		api.POST("/compliance", func(c *gin.Context) {
			handlers.GenerateCompliance(c, svc)
		})
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(started)),
		)
	}
}
