package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/api"
	"github.com/moizhassan7/crisp-cms/internal/config"
	"github.com/moizhassan7/crisp-cms/internal/objectstore"
	"github.com/moizhassan7/crisp-cms/internal/services"
	"github.com/moizhassan7/crisp-cms/internal/store"
	"github.com/moizhassan7/crisp-cms/pkg/logger"
	"github.com/moizhassan7/crisp-cms/pkg/metrics"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crisp-cms",
	Short: "Content service for the Crisp IT-services site",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "crisp-cms.toml", "path to the config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)

	adminAddUserCmd.Flags().String("password", "", "password for the new admin user")
	_ = adminAddUserCmd.MarkFlagRequired("password")
	adminCmd.AddCommand(adminAddUserCmd)
	rootCmd.AddCommand(adminCmd)
}

// bootstrap builds the shared dependency graph: config, logger, document
// store. Callers own closing the store.
func bootstrap(ctx context.Context) (*config.Configuration, *zap.Logger, store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.Production)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	st, err := store.NewFromConfig(ctx, cfg.Store)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing document store: %w", err)
	}

	return cfg, zapLogger, st, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, zapLogger, st, err := bootstrap(ctx)
		if err != nil {
			log.Printf("Failed to start: %v", err)
			return err
		}
		defer zapLogger.Sync()
		defer st.Close(ctx)

		config.LogConfig(cfg, zapLogger)

		objects, err := objectstore.NewFromConfig(ctx, cfg.ObjectStore)
		if err != nil {
			zapLogger.Error("Failed to initialize object store", zap.Error(err))
			return err
		}

		metricsCollector := metrics.NewCollector()
		authService := services.NewAuthService(st, cfg.Auth.SessionTimeout, zapLogger)
		uploadService := services.NewUploadService(objects, zapLogger, metricsCollector)

		router := api.NewRouter(api.Deps{
			Config:  cfg,
			Store:   st,
			Auth:    authService,
			Uploads: uploadService,
			Logger:  zapLogger,
			Metrics: metricsCollector,
		})
		router.SetupRoutes()

		srv := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router.Engine(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zapLogger.Fatal("Failed to start server", zap.Error(err))
			}
		}()
		zapLogger.Info("Server started", zap.String("port", cfg.Server.Port))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zapLogger.Info("Shutting down server...")

		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			zapLogger.Error("Forced shutdown", zap.Error(err))
		}

		zapLogger.Info("Server gracefully stopped")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create starter content in empty collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, zapLogger, st, err := bootstrap(ctx)
		if err != nil {
			log.Printf("Failed to start: %v", err)
			return err
		}
		defer zapLogger.Sync()
		defer st.Close(ctx)

		if err := seedContent(ctx, st, zapLogger); err != nil {
			zapLogger.Error("Seeding failed", zap.Error(err))
			return err
		}
		zapLogger.Info("Seeding completed")
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin panel users",
}

var adminAddUserCmd = &cobra.Command{
	Use:   "add-user <username>",
	Short: "Create an admin panel login",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, zapLogger, st, err := bootstrap(ctx)
		if err != nil {
			log.Printf("Failed to start: %v", err)
			return err
		}
		defer zapLogger.Sync()
		defer st.Close(ctx)

		password, _ := cmd.Flags().GetString("password")
		authService := services.NewAuthService(st, cfg.Auth.SessionTimeout, zapLogger)
		if err := authService.CreateUser(ctx, args[0], password); err != nil {
			zapLogger.Error("Failed to create admin user", zap.Error(err))
			return err
		}

		fmt.Printf("Admin user %s created\n", args[0])
		return nil
	},
}
