package commands

import (
	"github.com/spf13/cobra"

	"github.com/user/filmdata-service/internal/adapter/sqlite"
	"github.com/user/filmdata-service/pkg/utils"
)

const defaultPageBase = "https://www.imdb.com"

var ratingsBase *string

var ratingsCmd = &cobra.Command{
	Use:   "ratings [title-url...] [--input urls.txt]",
	Short: "Builds the ratings table from IMDb title pages.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(args)
		if err != nil {
			return err
		}
		urls, err := utils.ResolveAll(*ratingsBase, inputs)
		if err != nil {
			return err
		}
		if err := requireInputs(urls); err != nil {
			return err
		}

		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		pages, release := e.pageFetcher()
		defer release()

		table := e.assembler(nil, pages).Ratings(cmd.Context(), urls)
		return finish(cmd, table, (*sqlite.RowRepoImpl).SaveRatings)
	},
}

func init() {
	ratingsBase = ratingsCmd.Flags().String("base-url", defaultPageBase, "Base for relative page paths such as /title/tt0133093/.")
	rootCmd.AddCommand(ratingsCmd)
}
