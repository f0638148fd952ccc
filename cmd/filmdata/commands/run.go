package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/adapter/chromedp_fetcher"
	"github.com/user/filmdata-service/internal/adapter/httpfetch"
	"github.com/user/filmdata-service/internal/adapter/sqlite"
	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/internal/usecase"
	"github.com/user/filmdata-service/pkg/config"
	"github.com/user/filmdata-service/pkg/logger"
	"github.com/user/filmdata-service/pkg/tablefmt"
	"github.com/user/filmdata-service/pkg/telemetry"
)

// env is what every subcommand needs before it can assemble a batch.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	tel    telemetry.Telemetry
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.LoadFile(*envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	endpoint := cfg.OTLPEndpoint
	if *otlpTarget != "" {
		endpoint = *otlpTarget
	}
	tel, err := telemetry.Setup(ctx, "filmdata-cli", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	return &env{cfg: cfg, logger: log, tel: tel}, nil
}

func (e *env) close() {
	_ = e.tel.Shutdown(context.Background())
	_ = e.logger.Sync()
}

func (e *env) fetchOptions(target string) httpfetch.Options {
	return httpfetch.Options{
		MaxAttempts: e.cfg.FetchMaxAttempts,
		Backoff:     e.cfg.FetchBackoff,
		MaxBackoff:  e.cfg.FetchMaxBackoff,
		Timeout:     e.cfg.FetchTimeout,
		UserAgent:   e.cfg.FetchUserAgent,
		Proxies:     e.cfg.FetchProxy,
		Target:      target,
		Logger:      e.logger,
	}
}

// pageFetcher builds a fresh fetcher for one batch. The returned func
// releases it.
func (e *env) pageFetcher() (repository.PageFetcher, func()) {
	if e.cfg.FetchMode == config.FetchModeBrowser {
		proxy, _, _ := strings.Cut(e.cfg.FetchProxy, ",")
		f := chromedp_fetcher.New(chromedp_fetcher.Options{
			MaxAttempts: e.cfg.FetchMaxAttempts,
			Backoff:     e.cfg.FetchBackoff,
			Timeout:     e.cfg.FetchTimeout,
			UserAgent:   e.cfg.FetchUserAgent,
			Proxy:       strings.TrimSpace(proxy),
			Logger:      e.logger,
		})
		return f, f.Close
	}
	return httpfetch.New(e.fetchOptions(httpfetch.TargetPage)), func() {}
}

func (e *env) assembler(movies repository.MovieSource, pages repository.PageFetcher) *usecase.Assembler {
	return &usecase.Assembler{Movies: movies, Pages: pages, Logger: e.logger}
}

// readInputs merges positional args with the lines of the --input file.
func readInputs(args []string) ([]string, error) {
	inputs := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			inputs = append(inputs, a)
		}
	}
	if *inputFile == "" {
		return inputs, nil
	}

	f, err := os.Open(*inputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", *inputFile, err)
	}
	return inputs, nil
}

func requireInputs(inputs []string) error {
	if len(inputs) == 0 {
		return usecase.ErrEmptyBatch
	}
	return nil
}

// finish prints the table, optionally stores it, and reports on stderr.
func finish[R entity.Row](
	cmd *cobra.Command,
	t *entity.Table[R],
	save func(*sqlite.RowRepoImpl, context.Context, []R) error,
) error {
	if err := tablefmt.Render(cmd.OutOrStdout(), *outFormat, t.Columns, t.Cells(tablefmt.Missing)); err != nil {
		return err
	}

	if *dbPath != "" {
		if err := store(cmd.Context(), *dbPath, t, save); err != nil {
			return err
		}
	}

	report := t.Report()
	printReport(cmd.ErrOrStderr(), report)
	if !report.OK() {
		return errBatchFailed
	}
	return nil
}

func store[R entity.Row](
	ctx context.Context,
	path string,
	t *entity.Table[R],
	save func(*sqlite.RowRepoImpl, context.Context, []R) error,
) error {
	db, err := sqlite.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, _ := t.Storable()
	if err := save(sqlite.NewRowRepo(db), ctx, rows); err != nil {
		return fmt.Errorf("failed to save %s rows to %s: %w", t.Kind, path, err)
	}
	return nil
}

func printReport(w io.Writer, r entity.BatchReport) {
	fmt.Fprintf(w, "%s: %d total, %d complete, %d partial, %d missing, %d failed in %s\n",
		r.Kind, r.Total, r.Complete, r.Partial, r.Missing, r.Failed,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	for _, in := range r.FailedInputs {
		fmt.Fprintf(w, "  failed: %s\n", in)
	}
	if r.Unkeyed > 0 {
		fmt.Fprintf(w, "  %d row(s) have no film id and are not stored\n", r.Unkeyed)
	}
}
