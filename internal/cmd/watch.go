package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sonukumar0009/Farmart/internal/config"
	"github.com/Sonukumar0009/Farmart/internal/extract"
	"github.com/Sonukumar0009/Farmart/internal/output"
	"github.com/Sonukumar0009/Farmart/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <target_date>",
	Short: "Re-run the extraction whenever the archive changes",
	Long: `Run the extraction once, then watch the archive and run it again each time
the archive is rewritten or replaced. Stops on Ctrl-C.

Examples:
  extract-logs watch 2024-01-01
  extract-logs watch --archive /var/log/archive/logs.zip --debounce 2s 2024-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration(config.KeyDebounce, 0, "quiet period before re-running after a change (default 500ms)")
	cobra.CheckErr(viper.BindPFlag(config.KeyDebounce, watchCmd.Flags().Lookup(config.KeyDebounce)))
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	// --- Set up context with graceful shutdown ---
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(cfg.ArchivePath)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	go w.Start(ctx)

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s for changes (date %q)\n", w.Path(), date)

	run := func() error {
		rep, err := ext.Run(ctx, date)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return renderer.Failure(err)
		}
		return renderer.Success(rep)
	}

	if err := run(); err != nil {
		return err
	}

	changes := watcher.Debounce(w.Events, cfg.Debounce)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(cmd.ErrOrStderr(), "stopped watching")
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := run(); err != nil {
				return err
			}
		}
	}
}
