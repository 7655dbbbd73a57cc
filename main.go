package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/op/go-logging"
	"github.com/rs/cors"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/config"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/dataset"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/handlers"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/middleware"
)

var log = logging.MustGetLogger("log")

// InitLogger installs a leveled stderr backend for the shared logger.
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)
	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")
	logging.SetBackend(backendLeveled)
	return nil
}

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	config.InitCache()

	source, cleanup, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize data source: %v", err)
	}
	defer cleanup()

	// Load and prepare the dataset before accepting traffic. A broken
	// source aborts startup; there is no partial dashboard.
	store := handlers.NewStore(source)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := store.Load(loadCtx); err != nil {
		cancelLoad()
		log.Fatalf("Failed to load dataset: %v", err)
	}
	cancelLoad()
	handlers.Init(store)

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	})

	r.Use(middleware.CORSDebugMiddleware)
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("Shutdown signal received")
	case err := <-serverErrors:
		log.Errorf("Server error received: %v", err)
	}

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	} else {
		log.Info("Server shutdown completed")
	}
}

// buildSource constructs the configured dataset source and returns a
// cleanup for whatever connections it opened.
func buildSource(cfg *config.Config) (dataset.Source, func(), error) {
	switch cfg.DataSource {
	case "postgres":
		if err := config.InitDBWithRetry(5); err != nil {
			return nil, nil, err
		}
		return dataset.NewPostgresSource(config.DB, cfg.DemographicsTable, cfg.ServicesTable), config.CloseDB, nil
	case "mongo":
		if err := config.InitMongo(); err != nil {
			return nil, nil, err
		}
		return dataset.NewMongoSource(config.MongoDB, cfg.DemographicsCollection, cfg.ServicesCollection), config.CloseMongo, nil
	default:
		return dataset.NewCSVSource(cfg.DemographicsCSV, cfg.ServicesCSV), func() {}, nil
	}
}

func registerRoutes(api *mux.Router) {
	// Analysis views
	api.HandleFunc("/views/executive", handlers.GetExecutiveView).Methods("GET", "OPTIONS")
	api.HandleFunc("/views/demographics", handlers.GetDemographicView).Methods("GET", "OPTIONS")
	api.HandleFunc("/views/provinces", handlers.GetProvincialView).Methods("GET", "OPTIONS")
	api.HandleFunc("/views/services", handlers.GetServiceUsageView).Methods("GET", "OPTIONS")
	api.HandleFunc("/views/segments", handlers.GetSegmentationView).Methods("GET", "OPTIONS")
	api.HandleFunc("/views/policy", handlers.GetPolicyInsightsView).Methods("GET", "OPTIONS")

	// Dashboard controls and dataset management
	api.HandleFunc("/filters/options", handlers.GetFilterOptions).Methods("GET", "OPTIONS")
	api.HandleFunc("/dataset/info", handlers.GetDatasetInfo).Methods("GET", "OPTIONS")
	api.HandleFunc("/dataset/reload", handlers.ReloadDataset).Methods("POST")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}
