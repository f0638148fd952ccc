package commands

import (
	"github.com/spf13/cobra"

	"github.com/user/filmdata-service/internal/adapter/httpfetch"
	"github.com/user/filmdata-service/internal/adapter/sqlite"
	"github.com/user/filmdata-service/internal/adapter/tmdb"
)

var filmsAPIKey *string

var filmsCmd = &cobra.Command{
	Use:   "films [tmdb-id...] [--input ids.txt]",
	Short: "Builds the films table from the TMDB movie API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := readInputs(args)
		if err != nil {
			return err
		}
		if err := requireInputs(ids); err != nil {
			return err
		}

		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		key := e.cfg.TMDBAPIKey
		if *filmsAPIKey != "" {
			key = *filmsAPIKey
		}
		movies, err := tmdb.New(e.cfg.TMDBBaseURL, key, e.fetchOptions(httpfetch.TargetTMDB))
		if err != nil {
			return err
		}

		table := e.assembler(movies, nil).Films(cmd.Context(), ids)
		return finish(cmd, table, (*sqlite.RowRepoImpl).SaveFilms)
	},
}

func init() {
	filmsAPIKey = filmsCmd.Flags().String("api-key", "", "TMDB API key; defaults to TMDB_API_KEY.")
	rootCmd.AddCommand(filmsCmd)
}
