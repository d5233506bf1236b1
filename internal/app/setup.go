// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/npodsekin/gocatalog/internal/auth"
	"github.com/npodsekin/gocatalog/internal/catalog"
	"github.com/npodsekin/gocatalog/internal/config"
	"github.com/npodsekin/gocatalog/internal/store"
	"github.com/npodsekin/gocatalog/internal/transport/web"
	"github.com/npodsekin/gocatalog/pkg/server"
)

type Dependencies struct {
	ProductService catalog.ProductService
	Gate           *auth.Gate
	Logger         *slog.Logger
}

func SetupDependencies(docStore store.DocumentStore, gate *auth.Gate, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: catalog.NewService(docStore),
		Gate:           gate,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and view routes.
func SetupHttpHandler(deps *Dependencies) (http.Handler, error) {
	mux := server.NewChiRouter(deps.Logger)
	if err := wireRoutes(mux, deps); err != nil {
		return nil, err
	}
	return mux, nil
}

// wireRoutes sets up the view routes behind the session gate.
func wireRoutes(mux *chi.Mux, deps *Dependencies) error {
	handler, err := web.NewHandler(deps.ProductService, deps.Gate, deps.Logger)
	if err != nil {
		return err
	}
	handler.RegisterRoutes(mux)
	return nil
}

// SetupHttpServer creates and configures the HTTP server for the catalog application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) (*http.Server, error) {
	mux, err := SetupHttpHandler(deps)
	if err != nil {
		return nil, err
	}

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux), nil
}
