// Package bookshop предоставляет маршруты приложения.
package bookshop

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/handlers/auth/signin"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/handlers/auth/signup"
	ordercreate "github.com/Ruytter/projeto15-book-shopping-back/internal/http/handlers/order/create"
	orderlist "github.com/Ruytter/projeto15-book-shopping-back/internal/http/handlers/order/list"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/middlewarectx"
	authservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/auth"
	orderservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/order"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, orderService *orderservice.OrderService) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/sign-up", signup.New(logger, authService).ServeHTTP)
	r.Post("/sign-in", signin.New(logger, authService).ServeHTTP)

	// Группа с проверкой сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/pedidos", ordercreate.New(logger, orderService).ServeHTTP)
		r.Get("/meus-pedidos", orderlist.New(logger, orderService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
