// Package main is the entry point for routerctl, a management CLI for
// LiteLLM auto-routers. An auto-router is a gateway-side virtual model
// that classifies an incoming request against labeled example utterances
// and dispatches to the best-matching backend model.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nirmaker/routerctl/internal/config"
	"github.com/nirmaker/routerctl/internal/gateway"
	"github.com/nirmaker/routerctl/internal/logging"
	"github.com/nirmaker/routerctl/internal/preset"
	"github.com/nirmaker/routerctl/internal/routefile"
)

var (
	version = "0.1.0"

	cfgPath    string
	gatewayURL string
	apiKey     string
	verbose    bool
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routerctl",
		Short: "Manage LiteLLM auto-routers",
		Long: `routerctl creates, lists, and deletes auto-router models on a
LiteLLM gateway through its HTTP admin API.

Create from a preset:       routerctl create MyCoder --preset coding
Create from a routes file:  routerctl create MyRouter --routes routes.json --default groq/llama-3.3-70b-versatile
List configured models:     routerctl list
Delete a model by ID:       routerctl delete <model-id>`,
		PersistentPreRunE: initLogging,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.routerctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "url", "", "gateway URL (overrides config and LITELLM_URL)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "gateway API key (overrides config and LITELLM_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("routerctl v%s\n", version)
		},
	})

	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogging configures the global logger before any command runs.
// A broken config file must not block commands like version, so config
// errors fall back to defaults here and surface later when a command
// actually needs the config.
func initLogging(cmd *cobra.Command, args []string) error {
	level := config.Default().Logging.Level
	if cfg, err := loadConfig(); err == nil {
		level = cfg.Logging.Level
	}
	logging.Setup(level, verbose)
	return nil
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgPath != "" {
		cfg, err = config.LoadFromPath(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if gatewayURL != "" {
		cfg.Gateway.URL = gatewayURL
	}
	if apiKey != "" {
		cfg.Gateway.APIKey = apiKey
	}
	return cfg, nil
}

func newClient() (*gateway.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return gateway.NewClient(&gateway.ClientConfig{
		BaseURL: cfg.Gateway.URL,
		APIKey:  cfg.Gateway.APIKey,
		Timeout: cfg.Timeout(),
	}), nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// CREATE COMMAND
// ═══════════════════════════════════════════════════════════════════════════════

func createCmd() *cobra.Command {
	var (
		presetName   string
		routesPath   string
		defaultModel string
	)

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new auto-router",
		Long: `Create an auto-router from a built-in preset or a routes JSON file.

Examples:
  routerctl create MyCoder --preset coding
  routerctl create MyRouter --routes routes.json --default groq/llama-3.3-70b-versatile

Routes file format (ordered array of route objects):
  [
    {
      "name": "model/name",
      "description": "Description",
      "utterances": ["keyword1", "keyword2"],
      "score_threshold": 0.35
    }
  ]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			// Option validation happens before a client exists, so a
			// usage error never touches the network.
			routes, defModel, err := resolveCreateInput(presetName, routesPath, defaultModel)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			fmt.Println(headingStyle.Render(fmt.Sprintf("Creating router: %s", name)))
			fmt.Printf("  Default model: %s\n", defModel)
			fmt.Printf("  Routes:        %d\n", len(routes))

			modelID, err := client.CreateRouter(cmd.Context(), gateway.RouterConfig{
				RouterName:   name,
				DefaultModel: defModel,
				Routes:       routes,
			})
			if err != nil {
				return err
			}

			if modelID == "" {
				modelID = "N/A"
			}
			fmt.Printf("%s Router %q created (model ID: %s)\n", okStyle.Render("✅"), name, modelID)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", "", "built-in preset name (see 'routerctl presets')")
	cmd.Flags().StringVar(&routesPath, "routes", "", "path to a routes JSON file")
	cmd.Flags().StringVar(&defaultModel, "default", "", "default model (required with --routes)")

	return cmd
}

// resolveCreateInput turns the create flags into routes and a default
// model. Exactly one of preset/routes file must be chosen, and a routes
// file needs an explicit default model.
func resolveCreateInput(presetName, routesPath, defaultModel string) ([]gateway.RouteDefinition, string, error) {
	switch {
	case presetName != "" && routesPath != "":
		return nil, "", errors.New("use either --preset or --routes, not both")

	case presetName != "":
		p, ok := preset.Get(presetName)
		if !ok {
			return nil, "", fmt.Errorf("unknown preset %q (available: %s)",
				presetName, strings.Join(preset.Names(), ", "))
		}
		return p.Routes, p.DefaultModel, nil

	case routesPath != "":
		if defaultModel == "" {
			return nil, "", errors.New("--default is required when using --routes")
		}
		routes, err := routefile.Load(routesPath)
		if err != nil {
			return nil, "", err
		}
		return routes, defaultModel, nil

	default:
		return nil, "", errors.New("either --preset or --routes is required")
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// LIST COMMAND
// ═══════════════════════════════════════════════════════════════════════════════

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			zlog.Debug().Str("url", client.BaseURL()).Msg("fetching models")
			models, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			if len(models) == 0 {
				fmt.Println("No models configured.")
				return nil
			}

			fmt.Println(headingStyle.Render(fmt.Sprintf("Found %d models", len(models))))
			for _, m := range models {
				fmt.Printf("\n  • %s\n", m.Name)
				fmt.Printf("    %s %s\n", dimStyle.Render("ID:"), m.ID)
				fmt.Printf("    %s %s\n", dimStyle.Render("Model:"), m.Model)
			}
			return nil
		},
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// DELETE COMMAND
// ═══════════════════════════════════════════════════════════════════════════════

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [model_id]",
		Short: "Delete a model by ID",
		Long: `Delete a model by its internal ID (see 'routerctl list').

Deletion is immediate and irreversible from this tool's perspective.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID := args[0]

			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteModel(cmd.Context(), modelID); err != nil {
				return err
			}

			fmt.Printf("%s Model deleted: %s\n", okStyle.Render("✅"), modelID)
			return nil
		},
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// PRESETS COMMANDS
// ═══════════════════════════════════════════════════════════════════════════════

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in router presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range preset.All() {
				fmt.Printf("  %s %s\n", headingStyle.Render(p.Name),
					dimStyle.Render(fmt.Sprintf("(%d routes, default %s)", len(p.Routes), p.DefaultModel)))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "Show the routes of a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := preset.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown preset %q (available: %s)",
					args[0], strings.Join(preset.Names(), ", "))
			}

			fmt.Println(headingStyle.Render(p.Name))
			fmt.Printf("  Default model: %s\n", p.DefaultModel)
			for _, r := range p.Routes {
				fmt.Printf("\n  • %s (threshold %.2f)\n", r.Name, r.ScoreThreshold)
				fmt.Printf("    %s\n", dimStyle.Render(r.Description))
				fmt.Printf("    Utterances: %s\n", strings.Join(r.Utterances, ", "))
			}
			return nil
		},
	})

	return cmd
}

// ═══════════════════════════════════════════════════════════════════════════════
// CONFIG COMMANDS
// ═══════════════════════════════════════════════════════════════════════════════

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Println("routerctl configuration:")
			fmt.Println("────────────────────────")
			fmt.Printf("Gateway URL: %s\n", cfg.Gateway.URL)
			fmt.Printf("API key:     %s\n", maskKey(cfg.Gateway.APIKey))
			fmt.Printf("Timeout:     %s\n", cfg.Timeout())
			fmt.Printf("Log level:   %s\n", cfg.Logging.Level)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			if cfgPath != "" {
				fmt.Println(cfgPath)
				return
			}
			home, _ := os.UserHomeDir()
			fmt.Println(home + "/.routerctl/config.yaml")
		},
	})

	return cmd
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
