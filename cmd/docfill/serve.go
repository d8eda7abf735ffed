package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfill/internal/adapters/driven/auth"
	"github.com/custodia-labs/docfill/internal/adapters/driven/docx"
	"github.com/custodia-labs/docfill/internal/adapters/driven/memory"
	"github.com/custodia-labs/docfill/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/docfill/internal/adapters/driven/redis"
	"github.com/custodia-labs/docfill/internal/adapters/driven/storage"
	"github.com/custodia-labs/docfill/internal/adapters/driving/http"
	"github.com/custodia-labs/docfill/internal/config"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
	"github.com/custodia-labs/docfill/internal/core/services"
	"github.com/custodia-labs/docfill/internal/extractors"
	"github.com/custodia-labs/docfill/internal/fill"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Starts the HTTP API on the configured port.

Templates are kept in memory unless DOCFILL_STORE selects redis or
postgres. Generated documents go to OUTPUT_DIR, or to S3_BUCKET when set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("docfill starting", "version", version, "store", cfg.Store.Kind, "output", cfg.Output.Kind)

	store, closeStore, err := openDocumentStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	outputs, err := openOutputStore(cfg.Output)
	if err != nil {
		return err
	}

	var signer driven.LinkSigner
	if cfg.Signing.Enabled() {
		signer = auth.NewLinkSigner(cfg.Signing.Secret, cfg.Signing.TTL)
		logger.Info("download links are signed", "ttl", cfg.Signing.TTL)
	}

	templates := services.NewTemplateService(services.TemplateDeps{
		Store:      store,
		Extractors: extractors.DefaultRegistry(docx.NewExtractor()),
		Builder:    docx.NewBuilder(),
		Outputs:    outputs,
		Signer:     signer,
		Pipeline:   fill.DefaultPipeline().WithLogger(logger),
		Logger:     logger,
	}, services.TemplateServiceConfig{
		ExtractTimeout: cfg.Processing.ExtractTimeout,
		BuildTimeout:   cfg.Processing.BuildTimeout,
	})

	server := http.NewServer(http.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Version:         version,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, templates, logger)

	return server.Start(cfg.Server.ShutdownTimeout)
}

// openDocumentStore returns the configured store and a function that
// releases its connection.
func openDocumentStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (driven.DocumentStore, func(), error) {
	switch cfg.Kind {
	case config.StoreRedis:
		client, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to redis")
		return redisadapter.NewDocumentStore(client, cfg.TTL), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("connected to postgres")

		store := postgres.NewDocumentStore(db, cfg.TTL)
		janitor := services.NewJanitor(services.JanitorConfig{
			Purger:   store,
			Logger:   logger,
			Interval: cfg.PurgeInterval,
		})
		janitor.Start(ctx)
		return store, func() {
			janitor.Stop()
			_ = db.Close()
		}, nil

	default:
		return memory.NewDocumentStore(), func() {}, nil
	}
}

func openOutputStore(cfg config.OutputConfig) (driven.OutputStore, error) {
	if cfg.Kind == config.OutputS3 {
		client := storage.NewS3Client(storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Prefix:          cfg.S3.Prefix,
		})
		return storage.NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix), nil
	}

	store, err := storage.NewFileStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output dir: %w", err)
	}
	return store, nil
}
