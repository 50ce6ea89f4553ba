package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"loans/internal/batch"
	"loans/internal/credit"
	loansmetrics "loans/internal/loans/metrics"
	"loans/internal/loans/models"
	"loans/internal/loans/ports"
	"loans/internal/loans/processor"
	"loans/internal/platform/config"
	"loans/internal/platform/logger"
	"loans/internal/platform/redis"
	audit "loans/pkg/platform/audit"
	"loans/pkg/platform/audit/publishers/compliance"
	"loans/pkg/platform/audit/publishers/ops"
	"loans/pkg/platform/audit/publishers/stream"
	"loans/pkg/platform/audit/store/memory"
	"loans/pkg/platform/circuit"
	strs "loans/pkg/platform/strings"
)

var errUndecided = errors.New("some applications could not be decided")

type decideOptions struct {
	*rootOptions
	output      string
	metricsFile string
}

func newDecideCmd(root *rootOptions) *cobra.Command {
	opts := &decideOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "decide <file>...",
		Short: "Decide every application in the given files.",
		Long: `decide loads applications (and an optional offline registry of
identities and credit scores) from one or more YAML files and decides them
concurrently. Every application gets its own identity verifier and credit
scorer.

Exits non-zero if any application could not be decided because identity
verification failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(cmd, opts, args)
		},
	}

	cmd.Flags().Int("concurrency", 4, "applications processed at once")
	cmd.Flags().String("identity-mode", config.IdentityDirect, "identity backend (direct, http)")
	cmd.Flags().String("scoring-mode", config.ScoringTable, "scoring backend (table, http)")
	cmd.Flags().String("redis-url", "", "store computed scores in Redis")
	cmd.Flags().StringSlice("kafka-brokers", nil, "publish audit events to Kafka")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	return cmd
}

func runDecide(cmd *cobra.Command, opts *decideOptions, files []string) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg, err := config.Load(cmd, opts.configFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	input := &batch.Input{}
	for _, file := range strs.DedupeAndTrim(files) {
		in, err := batch.LoadFile(file)
		if err != nil {
			return err
		}
		input.Merge(in)
	}
	apps := make([]*models.LoanApplication, 0, len(input.Applications))
	for i, spec := range input.Applications {
		app, err := spec.Build()
		if err != nil {
			return fmt.Errorf("application #%d (id %d): %w", i+1, spec.ID, err)
		}
		apps = append(apps, app)
	}

	reg := prometheus.NewRegistry()
	creditMetrics := credit.NewMetrics(reg)

	backends := batch.Backends{
		Breaker: circuit.New("credit-bureau",
			circuit.WithFailureThreshold(cfg.Scoring.BreakerThreshold),
			circuit.WithCooldown(cfg.Scoring.BreakerCooldown),
		),
		Metrics: creditMetrics,
		Logger:  log,
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		backends.Results = credit.NewRedisStore(redisClient, cfg.Scoring.ResultTTL)
	}

	publisher, closeAudit, err := auditPublisher(ctx, cfg.Kafka, reg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	factory, err := batch.NewFactory(cfg, input.Registry, backends)
	if err != nil {
		return err
	}
	policy, err := policyFromConfig(cfg.Policy)
	if err != nil {
		return err
	}
	runner, err := batch.NewRunner(factory,
		batch.WithConcurrency(cfg.Concurrency),
		batch.WithLogger(log),
		batch.WithProcessorOptions(
			processor.WithPolicy(policy),
			processor.WithLogger(log),
			processor.WithMetrics(loansmetrics.New(reg)),
			processor.WithAuditPublisher(publisher),
		),
	)
	if err != nil {
		return err
	}

	results, runErr := runner.Run(ctx, apps)

	if err := writeResults(cmd.OutOrStdout(), opts.output, results); err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			log.ErrorContext(ctx, "failed to write metrics", "file", opts.metricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	for _, res := range results {
		if res.Err != nil {
			return errUndecided
		}
	}
	return nil
}

func policyFromConfig(cfg config.PolicyConfig) (processor.Policy, error) {
	floor, err := cfg.IncomeFloorDecimal()
	if err != nil {
		return processor.Policy{}, err
	}
	return processor.Policy{IncomeFloor: floor, MinimumScore: cfg.MinimumScore}, nil
}

// auditPublisher streams to Kafka when brokers are configured and otherwise
// keeps the trail in memory for the life of the run. Compliance events fail
// closed; operations events go through the best-effort ops publisher.
func auditPublisher(ctx context.Context, cfg config.KafkaConfig, reg prometheus.Registerer, log *slog.Logger) (ports.AuditPublisher, func(), error) {
	var (
		sink    audit.Emitter
		closeFn = func() {}
	)
	if len(cfg.Brokers) == 0 {
		sink = compliance.New(memory.NewInMemoryStore(),
			compliance.WithLogger(log),
			compliance.WithMetrics(compliance.NewMetrics(reg)),
		)
	} else {
		pub, err := stream.New(cfg.Brokers, cfg.Topic, stream.WithLogger(log))
		if err != nil {
			return nil, nil, fmt.Errorf("kafka audit publisher: %w", err)
		}
		if cfg.CreateTopic {
			if err := pub.EnsureTopic(ctx, 1, 1); err != nil {
				_ = pub.Close()
				return nil, nil, err
			}
		}
		sink = pub
		closeFn = func() { _ = pub.Close() }
	}

	router := audit.NewRouter(log, nil)
	router.Register(audit.CategoryCompliance, sink)
	router.Register(audit.CategoryOperations, ops.New(sink,
		ops.WithLogger(log),
		ops.WithMetrics(ops.NewMetrics(reg)),
	))
	return router, closeFn, nil
}

type resultView struct {
	ApplicationID int    `json:"application_id"`
	Accepted      bool   `json:"accepted"`
	Reason        string `json:"reason"`
	Stage         string `json:"stage"`
	Score         *int   `json:"score,omitempty"`
	Consultations int    `json:"consultations"`
	Error         string `json:"error,omitempty"`
}

func toView(res batch.Result) resultView {
	v := resultView{
		ApplicationID: res.ApplicationID,
		Accepted:      res.Decision.Accepted,
		Reason:        string(res.Decision.Reason),
		Stage:         string(res.Decision.Stage),
		Score:         res.Decision.Score,
		Consultations: res.Consultations,
	}
	if res.Err != nil {
		v.Error = res.Err.Error()
	}
	return v
}

func writeResults(w io.Writer, format string, results []batch.Result) error {
	views := make([]resultView, 0, len(results))
	for _, res := range results {
		views = append(views, toView(res))
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDECISION\tREASON\tSTAGE\tSCORE")
	for _, v := range views {
		decision := "declined"
		if v.Accepted {
			decision = "accepted"
		}
		if v.Error != "" {
			decision = "error"
		}
		score := "-"
		if v.Score != nil {
			score = fmt.Sprint(*v.Score)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.ApplicationID, decision, v.Reason, v.Stage, score)
	}
	return tw.Flush()
}
