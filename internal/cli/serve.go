package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/api"
	"github.com/WillCS/uqplanner/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the optimiser over HTTP",
	Long: `Serve POST /optimise, /layout and /clashes, GET /subjects/{code},
/healthz and /metrics until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = eng.Settings().HTTPAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := logging.Stderr(eng.Settings().LogLevel, verbose)
		return api.NewServer(eng, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: UQPLANNER_HTTP_ADDR)")
}
