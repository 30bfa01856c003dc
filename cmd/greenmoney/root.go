package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/greenlyst/greenmoney/internal/config"
	"github.com/greenlyst/greenmoney/internal/telemetry"
	"github.com/greenlyst/greenmoney/pkg/echeck"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

type rootOptions struct {
	format string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "greenmoney",
		Short: "Client for the Green check processing API",
		Long: `greenmoney sends check, bill pay and invoice operations to the Green
check processing API and prints the decoded result.

Credentials and the target environment are read from GREENMONEY_* environment
variables or a .env file, e.g. GREENMONEY_CREDENTIALS__CLIENT_ID.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatMap, formatDelimited:
				return nil
			}
			return fmt.Errorf("unknown output format %q (want %s or %s)", opts.format, formatMap, formatDelimited)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.format, "format", formatMap, "Output format: map or delimited")

	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newBillPayCommand(opts))
	cmd.AddCommand(newInvoiceCommand(opts))
	cmd.AddCommand(newServeCommand())

	return cmd
}

// app holds what every command needs to talk to the remote service.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *transport.Client
	checks   *echeck.Client
	provider *sdktrace.TracerProvider
}

// newApp loads configuration and builds the check-family client. Calls are
// traced and, with a registerer, counted.
func newApp(ctx context.Context, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Exporter:       cfg.Telemetry.Exporter,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
	})
	if err != nil {
		return nil, err
	}

	var metrics *telemetry.Metrics
	if reg != nil {
		metrics = telemetry.NewMetrics(reg)
	}

	clientCfg, err := cfg.ClientConfig(transport.FamilyCheck, logger)
	if err != nil {
		return nil, err
	}
	clientCfg.Middleware = []transport.Middleware{
		telemetry.Middleware(tp.Tracer("github.com/greenlyst/greenmoney"), metrics),
	}

	client, err := transport.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		checks:   echeck.NewClient(echeck.NewRetryCaller(client, cfg.Retry.Policy())),
		provider: tp,
	}, nil
}

// close flushes pending spans.
func (a *app) close(ctx context.Context) {
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}

// withApp runs fn against a fresh app and prints its result with schema.
func withApp(cmd *cobra.Command, opts *rootOptions, schema transport.Schema, fn func(context.Context, *app) (transport.Result, error)) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.close(context.WithoutCancel(ctx))

	result, err := fn(ctx, a)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), opts.format, a.client.Delimiter(), schema, result)
}
