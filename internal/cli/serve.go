package cli

import (
	"context"

	"github.com/lshigami/intuity-sync/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the connectivity monitor",
		Long: `Run the HTTP API.

Configuration is read from .env and the environment. Set DATABASE_DRIVER
to mirror writes to a remote database and CONNECTIVITY_PROBE_ADDR to
replay local responses whenever the network comes back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fxApp := fx.New(app.Server)

			if err := fxApp.Start(context.Background()); err != nil {
				return WrapExitError(ExitCommandError, "failed to start application", err)
			}

			<-fxApp.Done()
			log.Info().Msg("Application shutting down gracefully...")
			return fxApp.Stop(context.Background())
		},
	}
}
