package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vheikkila/huutogo/config"
	"github.com/vheikkila/huutogo/huuto"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *huuto.Client

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "huutogo",
	Short: "A command line client for the Huuto.net marketplace",
	Long: `huutogo is a CLI client for the Huuto.net auction marketplace API.
It can search listings, manage your own items, place bids and inspect
your account, handling session tokens transparently.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the version information shown by --version
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create API client
	store := huuto.NewFileStore(cfg.Huuto.CredentialsFile)
	client, err = huuto.NewClient(cfg.Huuto.URL, store, logger,
		huuto.WithTimeout(cfg.Huuto.Timeout))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to an actual terminal
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the API connection and credentials",
	Long:  `Test the connection to the Huuto.net API and verify that the configured credentials can obtain a session token.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", cfg.Huuto.URL)

	ctx := context.Background()
	if _, err := client.Endpoints(ctx); err != nil {
		return fmt.Errorf("API not reachable: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	token, err := client.Tokens().Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain session token: %w", err)
	}
	fmt.Println("✓ Authentication successful!")
	fmt.Printf("- User id: %s\n", token.UserID)
	fmt.Printf("- Token expires: %s\n", token.ExpiresAt.Format(time.RFC3339))

	return nil
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, bool, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, true, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Search.Presets[preset]; ok {
			return presetFilter, true, nil
		}
		return "", false, fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", false, nil
}
