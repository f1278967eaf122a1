package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/payline-gateway/internal/config"
	"github.com/DanielPopoola/payline-gateway/internal/gateway"
	"github.com/DanielPopoola/payline-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

// errDryRun is returned if a dry-run gateway is ever asked to send.
var errDryRun = errors.New("dry run: request not sent")

type dryRunClient struct{}

func (dryRunClient) Call(context.Context, string, *message.Payload) (message.Tree, error) {
	return nil, errDryRun
}

// NewGateway builds a gateway from the PAYLINE_* environment. When the
// journal is enabled the database is connected and migrated, and the
// returned release func closes it.
func NewGateway(ctx context.Context, variant gateway.Variant, dryRun bool) (*gateway.Gateway, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := cfg.Logger.NewLogger()

	baseline, err := cfg.Gateway.ToDomain()
	if err != nil {
		return nil, nil, err
	}

	opts := []gateway.Option{
		gateway.WithLogger(logger),
		gateway.WithTimeout(cfg.Transport.ConnTimeout),
		gateway.WithBaseURL(cfg.Transport.Endpoint),
	}
	release := func() {}

	switch {
	case dryRun:
		opts = append(opts, gateway.WithClient(dryRunClient{}))
	default:
		opts = append(opts, gateway.WithRetry(cfg.Retry))

		if cfg.Journal.Enabled {
			db, err := postgres.Connect(ctx, &cfg.Database, logger)
			if err != nil {
				return nil, nil, fmt.Errorf("connect journal database: %w", err)
			}
			if err := db.Migrate(ctx); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("migrate journal database: %w", err)
			}
			opts = append(opts, gateway.WithJournal(postgres.NewJournalRepository(db)))
			release = db.Close
		}
	}

	g, err := gateway.New(variant, baseline, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return g, release, nil
}
