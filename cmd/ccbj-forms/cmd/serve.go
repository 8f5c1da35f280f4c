package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccbj/ccbj-forms/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the form validation HTTP API",
	Long: `Start an HTTP API exposing the form validators.

The API provides endpoints for:
  - POST /api/v1/validate/:kind               - Validate cpf, cnpj, email, date, telefone
  - POST /api/v1/validate/date-range          - Check a date range
  - POST /api/v1/currency/format              - Display typed cents as currency
  - POST /api/v1/currency/parse               - Parse an edited currency field
  - POST /api/v1/mask/:kind                   - Apply a keystroke to a masked field
  - POST /api/v1/bolsistas/validate           - Validate a recipient form
  - POST /api/v1/contratos/filter/validate    - Validate an advanced search
  - POST /api/v1/contratos/status/validate    - Validate a status change
  - POST /api/v1/documentos/placeholders      - List a template's placeholders
  - POST /api/v1/documentos/info              - Check a PDF
  - GET  /health                              - Health check

Examples:
  # Start server on the configured address
  ccbj-forms serve

  # Start on a custom port in debug mode
  ccbj-forms serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: CCBJ_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      cfg.Server.Address,
		Locale:       cfg.Locale,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug || serverDebug,
	}
	if serverAddr != "" {
		config.Address = serverAddr
	}
	if readTimeout > 0 {
		config.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		config.WriteTimeout = writeTimeout
	}

	// the validation API logs every request, so it runs at info level at least
	srvLogger := logger
	if !verbose {
		zc := zap.NewProductionConfig()
		if l, err := zc.Build(); err == nil {
			srvLogger = l
			defer func() { _ = l.Sync() }()
		}
	}

	srv := server.NewServer(config, srvLogger)
	return srv.Run(cmd.Context())
}
