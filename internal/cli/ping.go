package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydal-project/mydal/pkg/mydal"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity",
	Long: `Ping acquires a connection with the configured retry policy and
reports whether the server answers a liveness probe.

Examples:
  mydal ping --host db.example.com -u app -d classicmodels
  DB_HOST=localhost DB_USER=app DB_NAME=classicmodels mydal ping`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	ctx := cmd.Context()
	if _, err := client.Get(ctx); err != nil {
		return err
	}

	if !client.Live(ctx) {
		cfg := client.Config()
		return fmt.Errorf("%w: %s/%s stopped answering", mydal.ErrConnectionFailed, cfg.Addr(), cfg.Database)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s/%s is alive\n", client.Config().Addr(), client.Config().Database)
	return nil
}
