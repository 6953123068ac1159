package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"suitcase-cli/internal/format"
	"suitcase-cli/internal/mutate"
	"suitcase-cli/internal/projection"
	"suitcase-cli/internal/store"
	"suitcase-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "suitcase",
		Short:        "Suitcase (local-first) checklist CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive checklist
  suitcase

  # Scriptable commands
  suitcase items add --name Kettle --price 29.99 --description "Electric kettle" --image kettle.jpg
  suitcase items list
  suitcase items toggle 3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SUITCASE_DIR", ""), "Path to data dir (default: ~/.suitcase)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SUITCASE_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newItemsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	cmds, err := loadCommands(app)
	if err != nil {
		return err
	}
	return tui.Run(cmds)
}

// loadCommands resolves the data dir, opens the store, and builds the
// command layer with a freshly reloaded projection.
func loadCommands(app *App) (*mutate.Commands, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	cmds := mutate.New(s, projection.New())
	if err := cmds.Reload(context.Background()); err != nil {
		return nil, err
	}
	return cmds, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
