// Package bookshop собирает приложение магазина: хранилище, миграции,
// сервисы, маршруты и HTTP-сервер. Все зависимости конструируются явно
// и передаются в сервисы при старте.
package bookshop

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/config"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/lib/sl"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/migrations"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/rabbitmq"
	authservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/auth"
	orderservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/order"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/storage/repository"
)

// App держит HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	broker *amqp.Connection
}

// New собирает приложение из конфигурации: подключает базу, применяет
// миграции, при наличии настроек подключает брокер событий и регистрирует
// маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var broker *amqp.Connection
	var publisher *rabbitmq.Publisher
	if cfg.RabbitConnectionString != "" {
		broker, err = rabbitmq.Connect(cfg.RabbitConnectionString, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(broker, rabbitmq.DefaultQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	}

	authSvc := authservice.NewAuthService(db, db)
	var orderSvc *orderservice.OrderService
	if publisher != nil {
		orderSvc = orderservice.NewOrderService(db, publisher, logger)
	} else {
		orderSvc = orderservice.NewOrderService(db, nil, logger)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authSvc, orderSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		broker: broker,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if a.broker != nil {
			if closeErr := a.broker.Close(); closeErr != nil {
				a.logger.Error("failed to close broker connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
