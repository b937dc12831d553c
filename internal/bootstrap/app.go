package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Xenowa/foodifire-backend/internal/config"
	"github.com/Xenowa/foodifire-backend/internal/model"
	mysqlClient "github.com/Xenowa/foodifire-backend/internal/platform/mysql"
	rabbitmqClient "github.com/Xenowa/foodifire-backend/internal/platform/rabbitmq"
	redisClient "github.com/Xenowa/foodifire-backend/internal/platform/redis"
	"github.com/Xenowa/foodifire-backend/internal/repository"
	"github.com/Xenowa/foodifire-backend/internal/vision"
	"github.com/Xenowa/foodifire-backend/internal/worker"
)

type App struct {
	Config       *config.Config
	MySQL        *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	Classifier   *vision.Classifier
	ReportWorker *worker.ReportLogWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.FoodCondition{}, &model.ReportLog{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	classifier := vision.NewClassifier(cfg.Vision.ModelPath, cfg.Vision.ONNXSharedLibPath)

	reportLogRepo := repository.NewReportLogRepository(mysqlDB)
	reportWorker := worker.NewReportLogWorker(mqConn, reportLogRepo, cfg.RabbitMQ.ReportLogQueue)
	if err := reportWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start report log worker failed: %w", err)
	}

	return &App{
		Config:       cfg,
		MySQL:        mysqlDB,
		Redis:        redisCli,
		MQConn:       mqConn,
		Classifier:   classifier,
		ReportWorker: reportWorker,
		StartedAt:    time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ReportWorker != nil {
		a.ReportWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
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
