// Package cli implements the intuity command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/lshigami/intuity-sync/internal/app"
	"github.com/lshigami/intuity-sync/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"

	// OpenService builds the SyncService for one-shot commands. The returned
	// func releases it.
	OpenService func(ctx context.Context) (service.SyncService, func(), error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intuity",
		Short: "Classroom question and response sync",
		Long: `Publish questions and collect student answers.

Every write lands in local storage first and is mirrored to the remote
database when it can be reached.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewPublishCommand(opts))
	cmd.AddCommand(NewCurrentCommand(opts))
	cmd.AddCommand(NewSubmitCommand(opts))
	cmd.AddCommand(NewQuestionsCommand(opts))
	cmd.AddCommand(NewResponsesCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))

	return cmd
}

// openService starts the core fx graph without the HTTP server or the
// connectivity monitor.
func openService(ctx context.Context) (service.SyncService, func(), error) {
	var svc service.SyncService
	fxApp := fx.New(app.Core, fx.NopLogger, fx.Populate(&svc))
	if err := fxApp.Start(ctx); err != nil {
		return nil, nil, err
	}
	return svc, func() { _ = fxApp.Stop(context.Background()) }, nil
}

// withService runs fn against a freshly opened service.
func withService(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, svc service.SyncService, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, release, err := opts.OpenService(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start sync service", err)
	}
	defer release()
	return fn(ctx, svc, cmd.OutOrStdout())
}

// Execute runs the command line and returns the process exit code. Errors
// are reported on stderr in the selected format.
func Execute() int {
	opts := &RootOptions{OpenService: openService}
	cmd := newRootCommand(opts)
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.ErrOrStderr()}
	_ = f.Error(err.Error())
	return GetExitCode(err)
}
