package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// application carries what one process (or one shell session) shares across
// commands: flag values, the loaded config and the lazily built dependencies.
type application struct {
	configDir string
	dataFile  string
	logLevel  string

	cfg  *internal.Config
	deps *Dependencies

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	// status receives status-line messages; nil sends them to the log
	status io.Writer

	inShell bool
}

func newApplication(in io.Reader, out, errOut io.Writer) *application {
	return &application{in: in, out: out, errOut: errOut, status: out}
}

func Execute() {
	app := newApplication(os.Stdin, os.Stdout, os.Stderr)
	err := newRootCmd(app).ExecuteContext(context.Background())
	app.close()
	if err != nil {
		app.reportError(err)
		os.Exit(1)
	}
}

func newRootCmd(app *application) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "expense-tracker",
		Short:         "Expense Tracker",
		Long:          `Record personal expenses, summarize spending by category and set per-category budgets.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup()
		},
	}

	// a shell session keeps the flags it was started with
	if !app.inShell {
		rootCmd.PersistentFlags().StringVar(&app.configDir, "config", "", "directory containing config.yml")
		rootCmd.PersistentFlags().StringVar(&app.dataFile, "data-file", "", "path of the JSON data file (overrides storage.data_file)")
		rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn or error")
	}

	rootCmd.SetIn(app.in)
	rootCmd.SetOut(app.out)
	rootCmd.SetErr(app.errOut)

	rootCmd.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newSummaryCmd(app),
		newChartCmd(app),
		newBudgetCmd(app),
		newCategoriesCmd(app),
		newExportCmd(app),
	)
	if !app.inShell {
		rootCmd.AddCommand(
			newShellCmd(app),
			newHTTPServerCmd(app),
			newMigrateCmd(app),
			newSeedCmd(app),
		)
	}

	return rootCmd
}

// setup loads the config once and installs the process logger.
func (a *application) setup() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := loadConfig(a.configDir)
	if err != nil {
		return err
	}

	if a.dataFile != "" {
		abs, err := filepath.Abs(a.dataFile)
		if err != nil {
			return fmt.Errorf("resolve data file: %w", err)
		}
		cfg.Storage.DataFile = abs
	}
	if a.logLevel != "" {
		cfg.Observability.Logging.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("error validating config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	a.cfg = cfg
	return nil
}

func (a *application) close() {
	if a.deps == nil {
		return
	}
	if err := a.deps.Close(); err != nil {
		logger.LoggerWrapper().Error("failed to close storage", "error", err)
	}
	a.deps = nil
}

func (a *application) reportError(err error) {
	fmt.Fprintln(a.errOut, formatError(err))
}

// formatError renders err the way the status line shows it.
func formatError(err error) string {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		return "Error: " + err.Error()
	}

	switch {
	case appErr.Type == internal.ErrorTypeValidation:
		return "Input Error: " + appErr.Error()
	case errors.Is(err, internal.ErrLoadFailed):
		return "Load Error: " + appErr.Error()
	case appErr.Type == internal.ErrorTypeStorage:
		return "Save Error: " + appErr.Error()
	case appErr.Type == internal.ErrorTypeNotFound:
		return appErr.Message
	default:
		return "Error: " + appErr.Error()
	}
}

// loadConfig reads config.yml from dir (when set), the working directory and
// the app directory. A missing file is fine: defaults and EXPENSE_* env vars
// still apply.
func loadConfig(dir string) (*internal.Config, error) {
	// an optional .env in the working directory feeds the env overrides
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, internal.DefaultConfig())

	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath(internal.AppDir())
	v.SetConfigName(internal.ConfigFileName)
	v.SetConfigType("yml")
	v.SetEnvPrefix(internal.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, def *internal.Config) {
	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.data_file", def.Storage.DataFile)
	v.SetDefault("storage.source", def.Storage.Source)

	v.SetDefault("http_server.host", def.Server.Host)
	v.SetDefault("http_server.port", def.Server.Port)
	v.SetDefault("http_server.read_header_timeout", def.Server.ReadHeaderTimeout)
	v.SetDefault("http_server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("http_server.idle_timeout", def.Server.IdleTimeout)
	v.SetDefault("http_server.write_timeout", def.Server.WriteTimeout)

	v.SetDefault("observability.logging.level", def.Observability.Logging.Level)
	v.SetDefault("observability.logging.format", def.Observability.Logging.Format)
}
