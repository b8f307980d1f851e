package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jewelrender/jewelrender/internal/cataloging"
	"github.com/jewelrender/jewelrender/internal/handlers"
	"github.com/jewelrender/jewelrender/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the jewelry catalog HTTP API",
		Long: `Starts the JewelRender relay on the specified port.

The API accepts jewelry image URLs, classifies them with a vision-capable
LLM (Anthropic, Gemini, or OpenAI), and stores published catalog snapshots
per user. Set CATALOG_DB to back the catalog with SQLite instead of
process memory.`,
		Example: `  # Start server on default port 3000
  jewelrender serve

  # Start server on custom port with a persistent catalog
  CATALOG_DB=catalog.db jewelrender serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = os.Getenv("PORT")
			}
			if port == "" {
				port = "3000"
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			service, err := cataloging.NewService()
			if err != nil {
				return err
			}

			handler := handlers.New(store, service)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/analyze-jewelry", handler.HandleAnalyze)
			mux.HandleFunc("/api/publish-catalog", handler.HandlePublish)
			mux.HandleFunc("/api/catalog-tags", handler.HandleCatalogTags)
			mux.HandleFunc("/health", handler.HandleHealth)
			mux.HandleFunc("/", handler.HandleRoot)

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handlers.CORS(mux),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("JewelRender API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $PORT or 3000)")

	return cmd
}

// openStore selects the catalog backend: SQLite when CATALOG_DB is set,
// otherwise the in-memory placeholder.
func openStore() (storage.Store, error) {
	if path := os.Getenv("CATALOG_DB"); path != "" {
		slog.Info("Using SQLite catalog store", "path", path)
		return storage.OpenSQLite(path)
	}
	slog.Warn("Using in-memory catalog store; published catalogs are lost on restart")
	return storage.NewMemoryStore(), nil
}
