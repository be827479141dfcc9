package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/app"
	"rhystmorgan/triaContacts/internal/config"
	"rhystmorgan/triaContacts/internal/logging"
	"rhystmorgan/triaContacts/internal/views"
)

var (
	// Global flags
	configPath string
	dataDir    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "triaterm",
	Short: "Tria Contacts - a terminal contact list",
	Long: `Tria Contacts keeps a small personal contact list on this machine.

Run without arguments to open the interactive contact list. The subcommands
work on the same data for scripting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logPath := cfg.Logging.File
		if logPath != logging.Stderr {
			logPath = cfg.ResolvePath(logPath)
		}

		logger, err = logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			Path:    logPath,
			Verbose: verbose,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.tria)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: name-asc, name-desc, recent, oldest")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only contacts with this tag")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only contacts whose name, email or phone contains this")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")

	addCmd.Flags().StringVar(&addName, "name", "", "Contact name (required)")
	addCmd.Flags().StringVar(&addEmail, "email", "", "Email address (required)")
	addCmd.Flags().StringVar(&addPhone, "phone", "", "Phone number (required)")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma separated tags")
	addCmd.Flags().StringVar(&addAvatar, "avatar", "", "Avatar image URL or path")

	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every contact")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Export format: json or csv (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp opens the contact book described by the loaded configuration.
func openApp(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open contact book: %w", err)
	}
	return a, nil
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		logger.Warn("failed to close contact book", zap.Error(err))
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	p := tea.NewProgram(views.NewAppModel(cmd.Context(), a), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}
