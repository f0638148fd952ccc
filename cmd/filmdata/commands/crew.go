package commands

import (
	"github.com/spf13/cobra"

	"github.com/user/filmdata-service/internal/adapter/sqlite"
	"github.com/user/filmdata-service/pkg/utils"
)

var crewBase *string

var crewCmd = &cobra.Command{
	Use:   "crew [fullcredits-url...] [--input urls.txt]",
	Short: "Builds the crew table from IMDb full credits pages.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(args)
		if err != nil {
			return err
		}
		urls, err := utils.ResolveAll(*crewBase, inputs)
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

		table := e.assembler(nil, pages).Crew(cmd.Context(), urls)
		return finish(cmd, table, (*sqlite.RowRepoImpl).SaveCrew)
	},
}

func init() {
	crewBase = crewCmd.Flags().String("base-url", defaultPageBase, "Base for relative page paths such as /title/tt0133093/fullcredits.")
	rootCmd.AddCommand(crewCmd)
}
