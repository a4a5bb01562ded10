package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	httpAddr   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "request-board: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-board",
		Short: "Project request tracking board",
		Long: `request-board serves the project request board over HTTP and offers a few
maintenance commands against the same storage.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment variables override it)")
	cmd.PersistentFlags().StringVar(&httpAddr, "addr", "", "HTTP listen address (overrides config)")
	cmd.AddCommand(
		newServeCmd(),
		newRequestsCmd(),
		newUsersCmd(),
	)
	return cmd
}
