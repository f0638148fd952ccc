package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errBatchFailed makes the process exit non-zero once the table is printed.
var errBatchFailed = errors.New("one or more inputs failed")

var (
	envFile    *string
	inputFile  *string
	outFormat  *string
	dbPath     *string
	logLevel   *string
	otlpTarget *string
)

var rootCmd = &cobra.Command{
	Use:           "filmdata",
	Short:         "filmdata assembles film, ratings and crew tables from TMDB and IMDb.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	envFile = flags.String("env", ".env", "Env file with configuration overrides.")
	inputFile = flags.StringP("input", "i", "", "File with one input per line; '#' starts a comment.")
	outFormat = flags.StringP("format", "f", "table", "Output format: table, csv or markdown.")
	dbPath = flags.String("db", "", "Also upsert the rows into this SQLite database.")
	logLevel = flags.String("log-level", "", "Log level; defaults to LOG_LEVEL.")
	otlpTarget = flags.String("otlp-endpoint", "", "OTLP/HTTP endpoint for traces; defaults to OTLP_ENDPOINT.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
