package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/influxmock/pkg/cli/internal/output"
	"github.com/getmockd/influxmock/pkg/engine/api"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the data plane of a running influxmock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newManagementClient(managementURL)
		status, body, err := client.do(cmd.Context(), http.MethodGet, "/start", nil)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		switch status {
		case http.StatusCreated:
			fmt.Fprintln(w, string(body))
		case http.StatusNoContent:
			fmt.Fprintln(w, "Already running")
		default:
			return fmt.Errorf("start failed (%d): %s", status, strings.TrimSpace(string(body)))
		}
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the data plane and reset its state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newManagementClient(managementURL)
		status, body, err := client.do(cmd.Context(), http.MethodGet, "/stop", nil)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		switch status {
		case http.StatusOK:
			fmt.Fprintln(w, "Stopped")
		case http.StatusNotFound:
			fmt.Fprintln(w, "Not running")
		default:
			return fmt.Errorf("stop failed (%d): %s", status, strings.TrimSpace(string(body)))
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the data plane is running",
	Long: `Show whether the data plane is running. With --json the full simulation
state is printed: stored points, buckets, the sticky error code and any
pending query delay or chunking.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newManagementClient(managementURL)
		w := cmd.OutOrStdout()
		if jsonOutput {
			var state api.StateResponse
			if err := client.getJSON(cmd.Context(), "/state", &state); err != nil {
				return err
			}
			return output.JSON(w, state)
		}

		status, body, err := client.do(cmd.Context(), http.MethodGet, "/status", nil)
		if err != nil {
			return err
		}
		switch status {
		case http.StatusOK, http.StatusNotFound:
			fmt.Fprintln(w, strings.TrimSpace(string(body)))
			return nil
		default:
			return fmt.Errorf("status failed (%d)", status)
		}
	},
}

var logCmd = &cobra.Command{
	Use:   "log <message>...",
	Short: "Write a marker line into the server log",
	Long: `Write a marker line into the server log. Test harnesses use this to
separate test cases in the mock's output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newManagementClient(managementURL)
		msg := strings.Join(args, " ")
		status, body, err := client.do(cmd.Context(), http.MethodPost, "/log", strings.NewReader(msg))
		if err != nil {
			return err
		}
		if status != http.StatusNoContent {
			return fmt.Errorf("log failed (%d): %s", status, strings.TrimSpace(string(body)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
}
