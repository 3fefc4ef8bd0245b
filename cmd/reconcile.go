package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"loadorder-manager/core/config"
	"loadorder-manager/core/games"
	"loadorder-manager/core/publish"
	"loadorder-manager/core/reconcile"
	"loadorder-manager/feature/loadorder"
	"loadorder-manager/feature/loadorder/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatOrder   = "order"
	formatPlugins = "plugins"
)

var (
	reconcileFormat string
	reconcileOutput string
)

// reconcileInput is the file read by the reconcile command. JSON input is
// accepted as well since it is valid YAML.
type reconcileInput struct {
	// Game selects default natives when the input lists none.
	Game                  string `yaml:"game"`
	models.PreviewRequest `yaml:",inline"`
}

// reconcileCmd reconciles an order file offline.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <file>",
	Short: "Reconcile a load order file against its locks",
	Long: `Reads an unlocked order and a lock map from a YAML or JSON file and prints the
final load order. Nothing is published.

Examples:
  # Print the final order, one plugin per line
  reconcile order.yaml

  # Render plugins.txt into a file
  reconcile order.yaml --format plugins --output plugins.txt

  # Read from stdin
  cat order.json | reconcile -`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileFormat, "format", formatOrder, "Output format: order or plugins")
	reconcileCmd.Flags().StringVarP(&reconcileOutput, "output", "o", "", "Write to file instead of stdout")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if reconcileOutput != "" {
		f, err := os.Create(reconcileOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return reconcileFile(in, out, reconcileFormat, cfg.LoadOrder)
}

// reconcileFile decodes input, reconciles it and writes the result in format.
func reconcileFile(in io.Reader, out io.Writer, format string, cfg loadorder.Config) error {
	if format != formatOrder && format != formatPlugins {
		return fmt.Errorf("unknown format %q, expected %s or %s", format, formatOrder, formatPlugins)
	}

	var input reconcileInput
	if err := yaml.NewDecoder(in).Decode(&input); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	gameID := cfg.Game
	if input.Game != "" {
		gameID = input.Game
	}
	game, ok := games.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q", gameID)
	}

	result := loadorder.Preview(input.PreviewRequest, game.Natives, cfg.ExcludedExtension)

	if format == formatPlugins {
		_, err := out.Write(publish.RenderPluginsTxt(reconcile.Entries(result.Order, input.Order)))
		return err
	}

	w := bufio.NewWriter(out)
	for _, id := range result.Order {
		fmt.Fprintln(w, id)
	}
	return w.Flush()
}
