package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "smartfaq/internal/app"
	"smartfaq/internal/bootstrap"
	"smartfaq/internal/cache"
	"smartfaq/internal/platform/rabbitmq"
	"smartfaq/internal/repository"
	"smartfaq/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	answerCache := cache.NewAnswerCache(
		app.Redis,
		time.Duration(app.Config.Redis.AnswerTTLSeconds)*time.Second,
	)
	qaPublisher := rabbitmq.NewQAPublisher(app.MQConn, app.Config.RabbitMQ.QAPersistQueue)
	historyRepo := repository.NewQAHistoryRepository(app.MySQL)

	ingestService := appsvc.NewIngestService(
		app.LLM,
		app.Qdrant,
		appsvc.IngestConfig{
			Collection:   app.Config.Qdrant.Collection,
			VectorSize:   app.Config.Qdrant.VectorSize,
			ChunkSize:    app.Config.RAG.ChunkSize,
			ChunkOverlap: app.Config.RAG.ChunkOverlap,
		},
		app.Logger,
	)
	faqService := appsvc.NewFAQService(
		answerCache,
		app.LLM,
		app.Qdrant,
		app.LLM,
		qaPublisher,
		appsvc.FAQConfig{
			Collection: app.Config.Qdrant.Collection,
			TopK:       app.Config.RAG.TopK,
		},
		app.Logger,
	)
	faqHandler := handler.NewFAQHandler(ingestService, faqService, historyRepo, app.Config.RAG.DocumentsDir)

	v1 := router.Group("/api/v1")
	v1.POST("/documents", faqHandler.IngestDocuments)
	v1.POST("/ask", faqHandler.Ask)
	v1.GET("/history", faqHandler.History)

	return router
}
