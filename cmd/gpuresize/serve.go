package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuresize"
	"github.com/gogpu/gpuresize/internal/server"
)

var (
	serveAddr  string
	serveNoCPU bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP resize service",
	Long: `Serve exposes the resize pipeline over HTTP:

  POST /v1/resize?width=W&height=H[&filter=F][&format=F]
  GET  /v1/device
  GET  /healthz
  GET  /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		proc := gpuresize.NewProcessor()
		logger.Info("service starting", "status", proc.Init(), "addr", serveAddr)

		srv := server.New(proc, server.Config{
			Addr:               serveAddr,
			DisableCPUFallback: serveNoCPU,
			Logger:             logger,
		})
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveNoCPU, "no-cpu-fallback", false, "Fail requests instead of using CPU filters without a GPU")
	rootCmd.AddCommand(serveCmd)
}
