// Command procstream pipes its standard input through a child command
// without buffering either side, using the procstream bridge.
//
// Usage:
//
//	procstream [flags] -- command [args...]
//
// The child's exit status is propagated, and the tail of its stderr is
// replayed when it fails.
package main

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/procstream/procstream"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if exitErr, ok := errors.AsType[*procstream.ProcessExitError](err); ok {
			os.Stderr.Write(exitErr.Stderr)

			if exitErr.ExitCode > 0 {
				os.Exit(exitErr.ExitCode)
			}

			os.Exit(1)
		}

		fmt.Fprintln(os.Stderr, "procstream:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var chunkSize int

	var verbose bool

	cmd := &cobra.Command{
		Use:   "procstream [flags] -- command [args...]",
		Short: "Stream stdin through a child process",
		Long: `Spawns the given command with piped standard streams and bridges this ` +
			`process's stdin and stdout to it, chunk by chunk. Neither side is ever ` +
			`buffered fully in memory, and the child's stderr tail is reported when ` +
			`it exits non-zero.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := procstream.NopLogger()
			if verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}

			return procstream.Run(
				cmd.Context(),
				args,
				procstream.ChunksFromReader(os.Stdin, chunkSize),
				func(output iter.Seq[[]byte]) error {
					for chunk := range output {
						if _, err := os.Stdout.Write(chunk); err != nil {
							return fmt.Errorf("write output: %w", err)
						}
					}

					return nil
				},
				procstream.WithChunkSize(chunkSize),
				procstream.WithLogger(logger),
			)
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", procstream.DefaultChunkSize,
		"maximum chunk size in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
