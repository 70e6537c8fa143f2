package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// DefaultManagementURL is where the client commands reach the
// management listener unless --management-url says otherwise.
const DefaultManagementURL = "http://localhost:998"

var (
	// Persistent flags available to all subcommands
	managementURL string
	jsonOutput    bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "influxmock",
	Short: "influxmock is a scriptable mock of the InfluxDB HTTP API",
	Long: `influxmock emulates the InfluxDB v1/v2 write, query, bucket and org
endpoints for client library tests. Tests steer it by writing points tagged
with "direction": the tag value selects a response code, a delayed or
chunked query, a canned query fixture, or a reset.

A separate management listener exposes /start, /stop, /status and /log so a
test harness can restart the data plane between cases.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&managementURL, "management-url", DefaultManagementURL, "Management listener base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
