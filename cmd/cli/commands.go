package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dryRun   bool
	teamFlag string
	weekFlag string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Run the request in dry-run mode")

	availabilityCmd.Flags().StringVar(&teamFlag, "team", "", "Team id")
	availabilityCmd.Flags().StringVar(&weekFlag, "week", "", "Week id (YYYY-WW)")
	blockedCmd.Flags().StringVar(&teamFlag, "team", "", "Team id")
	blockedCmd.Flags().StringVar(&weekFlag, "week", "", "Week id (YYYY-WW)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(blockedCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(proposalsCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the registered teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams", nil)
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Show a team's availability record for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/availability", url.Values{"team": {teamFlag}, "week": {weekFlag}})
	},
}

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "Show a team's blocked slots for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/blocked-slots", url.Values{"team": {teamFlag}, "week": {weekFlag}})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List scheduled matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches", nil)
	},
}

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List open proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/proposals", nil)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep [expiration|templates]",
	Short: "Trigger a background sweep",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "expiration", "templates":
			return performPostRequest("/sweep/"+args[0], "")
		default:
			return fmt.Errorf("unknown sweep %q", args[0])
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import league fixtures as scheduled matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/fixtures/import", "")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func buildURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if dryRun {
		params.Set("dry_run", "true")
	}
	u := host + endpoint
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func performGetRequest(endpoint string, params url.Values) error {
	u := buildURL(endpoint, params)
	fmt.Printf("Making request to %s\n", u)

	resp, err := http.Get(u)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	u := buildURL(endpoint, nil)
	fmt.Printf("Making request to %s\n", u)

	resp, err := http.Post(u, "application/json", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
