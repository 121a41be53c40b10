package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"smartfaq/internal/ai"
	"smartfaq/internal/config"
	"smartfaq/internal/model"
	mysqlClient "smartfaq/internal/platform/mysql"
	qdrantClient "smartfaq/internal/platform/qdrant"
	rabbitmqClient "smartfaq/internal/platform/rabbitmq"
	redisClient "smartfaq/internal/platform/redis"
	"smartfaq/internal/repository"
	"smartfaq/internal/worker"
)

// App holds every expensive client exactly once; pipelines receive them as
// explicit dependencies, never as package-level state.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	MySQL    *gorm.DB
	Redis    *redis.Client
	MQConn   *amqp.Connection
	Qdrant   *qdrantClient.Client
	LLM      *ai.OpenAICompatibleClient
	QAWorker *worker.QAPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.QARecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	qdrant := qdrantClient.NewClient(cfg.Qdrant.URL, cfg.Qdrant.APIKey)
	llm := ai.NewOpenAICompatibleClient(
		cfg.LLM.BaseURL,
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.EmbeddingModel,
	)

	historyRepo := repository.NewQAHistoryRepository(mysqlDB)
	qaWorker := worker.NewQAPersistWorker(mqConn, historyRepo, cfg.RabbitMQ.QAPersistQueue, logger)
	if err := qaWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start qa persist worker failed: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		MySQL:     mysqlDB,
		Redis:     redisCli,
		MQConn:    mqConn,
		Qdrant:    qdrant,
		LLM:       llm,
		QAWorker:  qaWorker,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.QAWorker != nil {
		a.QAWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
