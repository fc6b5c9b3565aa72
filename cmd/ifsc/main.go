package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	ifsc "github.com/voxtmault/ifsc-integration"
)

// errLookupFailed makes the process exit non-zero after the failure was already rendered.
var errLookupFailed = errors.New("lookup failed")

type app struct {
	envPath string
	ii      *ifsc.IFSCIntegration
}

func (a *app) preRun(cmd *cobra.Command, args []string) error {
	ii, err := ifsc.InitIFSCService(a.envPath)
	if err != nil {
		return err
	}
	a.ii = ii

	return nil
}

func (a *app) close() {
	if a.ii == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.ii.Close(ctx); err != nil {
		slog.Error("failed to close ifsc service", "reason", err)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ifsc",
		Short:         "Look up Indian bank branches by IFSC code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.envPath, "env", "./.env", "Path to the .env file")
	rootCmd.PersistentPreRunE = a.preRun

	rootCmd.AddCommand(lookupCommand(a))
	rootCmd.AddCommand(shellCommand(a))
	rootCmd.AddCommand(serveCommand(a))

	return rootCmd
}

func run(ctx context.Context, args []string) int {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	return executeCmd(ctx, a, cmd)
}

// executeCmd runs cmd and maps its result to a process exit code.
func executeCmd(ctx context.Context, a *app, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	a.close()

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errLookupFailed):
		return 1
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}
