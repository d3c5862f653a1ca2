package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"macup/internal/catalog"
	"macup/internal/ui"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the maintenance steps that would run",
		Long: `List the effective maintenance steps in execution order: the built-in
catalog minus skip_steps, plus any enabled custom commands. Nothing is run.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			styles := ui.DefaultStyles()
			defs := catalog.Definitions(app.Config)

			fmt.Fprintln(app.Out, styles.Header.Render(fmt.Sprintf("Maintenance steps (%d):", len(defs))))
			for i, def := range defs {
				fmt.Fprintf(app.Out, "%2d. %s\n", i+1, def.Name)
				for _, command := range def.Commands {
					fmt.Fprintf(app.Out, "      %s\n", styles.Dim.Render(command))
				}
			}
			return nil
		},
	}
}
