/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the vacation scheduler server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse command-line flags
  2. Initialize SQLite store
  3. Create API handler with dependencies
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: vacations.db)
           Use ":memory:" for an in-memory database
  -i18n    Optional TOML catalog overriding the built-in translations

ENVIRONMENT:
  PASSWORD_HASH  bcrypt hash of the shared admin password. Empty disables
                 the login gate (development only).

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/vacations.db"

  # Run with in-memory database, custom translations
  ./server -db=":memory:" -i18n=./traducao.toml

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/vacation-scheduler/api"
	"github.com/warp/vacation-scheduler/i18n"
	"github.com/warp/vacation-scheduler/store/sqlite"
)

func main() {
	// .env is optional; flags and real env vars win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "vacations.db", "SQLite database path")
	catalogPath := flag.String("i18n", "", "optional TOML translation catalog")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, os.Getenv("PASSWORD_HASH"))
	if os.Getenv("PASSWORD_HASH") == "" {
		log.Println("Warning: PASSWORD_HASH not set, login gate disabled")
	}

	if *catalogPath != "" {
		catalog, err := i18n.Load(*catalogPath)
		if err != nil {
			log.Fatalf("Failed to load translation catalog: %v", err)
		}
		handler.Catalog = catalog
	}

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
