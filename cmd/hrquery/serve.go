package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/hrquery/schema"
	"github.com/spektr-org/hrquery/server"
	"github.com/spektr-org/hrquery/translator"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (GET /health, POST /chat)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	st, err := a.openStore(cmd)
	if err != nil {
		return err
	}

	// A broken schema is reported, not fatal: /chat surfaces it as a 500.
	if report, err := st.Check(cmd.Context(), schema.Default()); err != nil {
		a.logger.Warn("schema check failed", zap.Error(err))
	} else if !report.OK() {
		a.logger.Warn("database is missing required schema", zap.String("report", report.String()))
	}

	gin.SetMode(a.cfg.Server.Mode)

	opts := []server.Option{server.WithLogger(a.logger)}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(server.NewMetrics(), a.cfg.Metrics.Path))
	}
	srv := server.New(translator.New(translator.WithLogger(a.logger)), st, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", a.cfg.Address())
	return srv.Run(ctx, a.cfg.Address(), a.cfg.Server.GracePeriod())
}
