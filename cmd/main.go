package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	cozeclient "fangbot/clients/coze"
	hubclient "fangbot/clients/hub"
	lookupclient "fangbot/clients/lookup"
	"fangbot/config"
	"fangbot/db"
	"fangbot/faillog"
	"fangbot/handlers"
	"fangbot/middleware"
	"fangbot/services/dedup"
	"fangbot/services/lookup"
	"fangbot/services/messagelogs"
	"fangbot/services/products"
	usecases "fangbot/usecases/core"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	faillog.Init(cfg.FailureLogDir)
	captureMiddleware := middleware.NewErrorCaptureMiddleware()

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	messageLogsRepo := db.NewPostgresMessageLogsRepository(dbConn, cfg.DatabaseSchema)
	messageLogsService := messagelogs.NewMessageLogsService(messageLogsRepo)

	dedupService := dedup.NewDedupService(
		cfg.DedupConfig.Enabled,
		cfg.DedupConfig.Window,
		cfg.DedupConfig.MaxEntries,
	)

	backendClient := cozeclient.NewCozeClient(
		cfg.CozeConfig.BaseURL,
		cfg.CozeConfig.AccessToken,
		cfg.CozeConfig.BotID,
		cfg.CozeConfig.ConversationID,
		cfg.CozeConfig.UserTag,
		cfg.CozeConfig.RequestTimeout,
	)
	dispatchClient := hubclient.NewHubClient(cfg.HubConfig.BaseURL, cfg.HubConfig.RequestTimeout)

	// The lookup responder is optional: without it, unusable answers pass
	// through unchanged.
	var lookupResponder usecases.LookupResponder
	if cfg.LookupConfig.IsConfigured() {
		productsService, err := products.NewProductsService(cfg.LookupConfig.ReferencePath)
		if err != nil {
			return err
		}
		lookupResponder = lookup.NewLookupService(
			productsService,
			lookupclient.NewLookupClient(
				cfg.LookupConfig.BaseURL,
				cfg.LookupConfig.APIKey,
				cfg.LookupConfig.Model,
				cfg.LookupConfig.RequestTimeout,
			),
		)
	}

	coreUseCase := usecases.NewCoreUseCase(
		backendClient,
		lookupResponder,
		dispatchClient,
		messageLogsService,
		dedupService,
		cfg.TriggerConfig,
	)

	hubHandler := handlers.NewHubEventsHandler(cfg.HubConfig.CallbackSecret, coreUseCase, captureMiddleware)

	router := mux.NewRouter()
	hubHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           captureMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
