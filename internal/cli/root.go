package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mydal",
	Short: "MySQL connection manager and data access demo",
	Long: `mydal manages a single MySQL connection with retry on transient
failures and exposes the ClassicModels sample data plus a generic
users table through subcommands.

Connection settings resolve in order: flags, environment variables
(DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME), a .env file, and
mydal.yaml in the working directory.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or rejected credentials
  11 - Database connection failed
  12 - Requested row not found
  13 - SQL statement failed`,
	SilenceUsage: true,
}

var rootFlags struct {
	host      string
	port      int
	username  string
	password  string
	database  string
	envFile   string
	attempts  int
	baseDelay time.Duration
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.host, "host", "", "Database host")
	pf.IntVar(&rootFlags.port, "port", 0, "Database port (default 3306)")
	pf.StringVarP(&rootFlags.username, "user", "u", "", "Database user")
	pf.StringVar(&rootFlags.password, "password", "", "Database password (prefer DB_PASSWORD or the prompt)")
	pf.StringVarP(&rootFlags.database, "database", "d", "", "Database name")
	pf.StringVar(&rootFlags.envFile, "env-file", "", "Path to a dotenv file (default .env)")
	pf.IntVar(&rootFlags.attempts, "attempts", 0, "Total connection attempts before giving up")
	pf.DurationVar(&rootFlags.baseDelay, "base-delay", 0, "Delay before the first retry, doubled per attempt")
	pf.BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}
