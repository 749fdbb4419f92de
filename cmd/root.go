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

	"github.com/s0up4200/roosterteeth/config"
	"github.com/s0up4200/roosterteeth/filter"
	"github.com/s0up4200/roosterteeth/roosterteeth"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	presets *filter.Presets

	// newAPI builds the client used by the catalog commands.
	newAPI = newClient

	// Global flags
	useLogin   bool
	filterExpr string
	preset     string
	jsonOutput bool
)

// catalog is what the commands need from the API client.
type catalog interface {
	roosterteeth.API
	roosterteeth.Paginator
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "roosterteeth",
	Short: "Browse the Rooster Teeth VOD catalog from the command line",
	Long: `roosterteeth lists channels, series, seasons and episodes of the Rooster Teeth
VOD service and resolves playback data for episodes you are entitled to watch.

Requests are anonymous unless --login is given or auth.username is configured,
in which case the password comes from the config, RT_AUTH_PASSWORD or the
system keyring.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&useLogin, "login", false, "authenticate with the configured username")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// initializeApp loads the configuration and logger. The API client is
// created by each command that needs one.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if jsonOutput {
		cfg.Output.Format = "json"
	}

	presets, err = filter.NewPresets(cfg.Filter)
	if err != nil {
		return err
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
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

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// newClient creates a Rooster Teeth client from the loaded configuration.
func newClient(ctx context.Context) (catalog, error) {
	credential, err := resolveCredential(cfg.Auth, useLogin)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("credential", fmt.Sprint(credential)).Msg("Creating Rooster Teeth client")

	client, err := roosterteeth.NewClient(ctx, credential, logger,
		roosterteeth.WithBaseURL(cfg.API.BaseURL),
		roosterteeth.WithAuthURL(cfg.API.AuthURL),
		roosterteeth.WithClientID(cfg.API.ClientID),
		roosterteeth.WithTimeout(cfg.API.Timeout),
		roosterteeth.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Rooster Teeth client: %w", err)
	}
	return client, nil
}

// getFilter determines the filter to apply, or nil when none is requested.
// The command line expression takes priority over a preset.
func getFilter() (*filter.Filter, error) {
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		// viper lowercases map keys
		return presets.Get(strings.ToLower(preset))
	}

	return nil, nil
}
