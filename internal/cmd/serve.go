package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sonukumar0009/Farmart/internal/aggregator"
	"github.com/Sonukumar0009/Farmart/internal/config"
	"github.com/Sonukumar0009/Farmart/internal/extract"
	"github.com/Sonukumar0009/Farmart/internal/hub"
	"github.com/Sonukumar0009/Farmart/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve extractions over HTTP",
	Long: `Start an HTTP server that runs extractions on request.

Endpoints:
  POST /api/extractions        {"date": "2024-01-01"} runs an extraction
  GET  /api/extractions/:date  downloads output_<date>.txt
  GET  /api/stats              run totals
  GET  /ws                     live extraction events
  GET  /healthz                liveness`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String(config.KeyAddr, ":8080", "listen address")
	cobra.CheckErr(viper.BindPFlag(config.KeyAddr, serveCmd.Flags().Lookup(config.KeyAddr)))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.New()
	defer h.Close()

	agg := aggregator.New(h.Subscribe(), h.Dropped)
	go agg.Start(ctx)

	ext, err := extract.New(cfg, h.Publish, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "serving extractions of %s on %s\n", cfg.ArchivePath, cfg.Addr)
	return server.New(ext, h, agg, cfg.Addr).Start(ctx)
}
