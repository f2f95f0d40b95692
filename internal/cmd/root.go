package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sonukumar0009/Farmart/internal/config"
	"github.com/Sonukumar0009/Farmart/internal/extract"
	"github.com/Sonukumar0009/Farmart/internal/output"
)

const usageLine = "Usage: extract-logs <target_date>"

// errReported marks a failure whose message was already printed.
var errReported = errors.New("extraction failed")

var cfgFile string

// rootCmd extracts the lines for one date when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "extract-logs <target_date>",
	Short: "Extract log lines for a date from a ZIP archive",
	Long: `extract-logs scans a ZIP archive of plain (.log) and gzip-compressed (.gz)
log files and copies every line that starts with the given date into
<output-dir>/output_<date>.txt.

Examples:
  extract-logs 2024-01-01
  extract-logs --archive logs_2024.log.zip --output-dir out 2024-01-01
  EXTRACT_LOGS_ARCHIVE=/data/logs.zip extract-logs "2024-01-01 12:"`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExtract,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.extract-logs.yaml)")
	flags.StringP(config.KeyArchive, "a", "logs.zip", "path to the ZIP archive of logs")
	flags.StringP(config.KeyOutputDir, "d", "output", "directory for output_<date>.txt")
	flags.String(config.KeyDecode, "ignore", "handling of invalid UTF-8: ignore, replace, strict")
	flags.StringSlice(config.KeyInclude, []string{"**"}, "glob(s) selecting archive members to scan")
	flags.StringP(config.KeyFormat, "o", "text", "status output format: text, json")
	flags.BoolP(config.KeyVerbose, "v", false, "log diagnostics (skipped members, timings) to stderr")
	flags.Bool(config.KeyStrictExit, false, "exit with status 1 when extraction fails")

	for _, key := range []string{
		config.KeyArchive, config.KeyOutputDir, config.KeyDecode, config.KeyInclude,
		config.KeyFormat, config.KeyVerbose, config.KeyStrictExit,
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(key)))
	}
}

func initConfig() {
	config.Setup(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".extract-logs")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: cannot read config: %v\n", err)
		}
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(cmd.OutOrStdout(), usageLine)
		return nil
	}
	date := args[0]

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	renderer, err := output.New(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ext, err := extract.New(cfg, nil, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := ext.Run(ctx, date)
	if err != nil {
		if rerr := renderer.Failure(err); rerr != nil {
			return rerr
		}
		if cfg.StrictExit {
			return errReported
		}
		return nil
	}
	return renderer.Success(rep)
}

// newLogger returns the diagnostics logger. Without verbose only warnings pass.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
