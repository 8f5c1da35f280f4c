package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ccbj/ccbj-forms/internal/config"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configPath   string
	apiURL       string

	cfg     *config.Config
	cfgFile string
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ccbj-forms",
	Short: "Validate and format CCBJ contract management forms",
	Long: `ccbj-forms validates and formats the data entered in the CCBJ contract
management system and talks to its backend.

Supports:
  - CPF, CNPJ, email, phone and DD/MM/YYYY date validation
  - BRL currency display and edit parsing
  - Input masks for CPF, CNPJ, phone and date fields
  - Scholarship recipient registration and contract search
  - Document generation from templates

Examples:
  # Check a CPF
  ccbj-forms validate cpf 529.982.247-25

  # Show cents typed by the user as currency
  ccbj-forms currency format 123456

  # Register a recipient described in a YAML file
  ccbj-forms bolsista register ana.yaml

  # Run the validation API
  ccbj-forms serve --address :8080`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (env: CCBJ_API_URL)")
}

// initConfig layers the config file and environment under the flags
func initConfig(cmd *cobra.Command, args []string) error {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfgFile = path
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.URL = apiURL
	}

	logger.Debug("configuration loaded",
		zap.String("config", path),
		zap.String("api_url", cfg.API.URL),
		zap.String("locale", cfg.Locale),
	)

	switch outputFormat {
	case "json", "table":
		return nil
	}
	return fmt.Errorf("unsupported output format: %s", outputFormat)
}

func jsonOutput() bool {
	return outputFormat == "json"
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
