package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/analysis"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/clients/kafka_client"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/pipeline"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/spacesedan/sentiscope/internal/store"
)

// app owns every long-lived dependency a command needs.
type app struct {
	backend   analysis.Backend
	store     store.Store
	publisher kafka_client.Publisher
	runner    *pipeline.Runner
}

func newApp(ctx context.Context, cfg config.Config, hooks pipeline.Hooks) (*app, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := kafka_client.NewPublisher(kafka_client.KafkaConfig{
		Broker: cfg.KafkaBroker,
		Topic:  cfg.KafkaResultsTopic,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	renderer := export.NewChromiumRenderer(cfg.ChromePath)
	client := analysis.NewClient(backend, analysis.Options{
		Timeout:   cfg.AnalysisTimeout,
		BatchSize: cfg.AnalysisBatchSize,
	})

	return &app{
		backend:   backend,
		store:     st,
		publisher: publisher,
		runner: pipeline.NewRunner(client, st, publisher,
			export.NewExporter(renderer, renderer, cfg.ExportDir), hooks),
	}, nil
}

func (a *app) Close() {
	a.publisher.Close()
	if err := a.store.Close(); err != nil {
		slog.Warn("[SentiScope] Failed to close store", slog.String("error", err.Error()))
	}
}

func newBackend(cfg config.Config) (analysis.Backend, error) {
	switch cfg.AnalysisBackend {
	case "", "remote":
		return clients.NewRemoteAnalysisClient(cfg.AnalysisEndpoint, cfg.AnalysisHealthEndpoint), nil
	case "vader":
		return sentiment.NewVaderAnalyzer(), nil
	case "openai":
		c, err := clients.NewOpenAIAnalysisClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown ANALYSIS_BACKEND %q (want remote, vader or openai)", cfg.AnalysisBackend)
	}
}

func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "", "sqlite":
		return store.NewSQLiteStore(cfg.SQLitePath)
	case "valkey":
		vc, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:      cfg.ValkeyInitAddress,
			Password:     cfg.ValkeyPassword,
			UseTLS:       cfg.ValkeyTLS,
			DisableCache: true,
		})
		if err != nil {
			return nil, err
		}
		return store.NewValkeyStore(vc), nil
	case "dynamodb":
		awsCfg, err := clients.GetAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return store.NewDynamoDBStore(clients.NewDynamoDBClient(awsCfg, cfg.AWSEndpoint), cfg.DynamoDBTable), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want memory, sqlite, valkey or dynamodb)", cfg.StoreBackend)
	}
}
