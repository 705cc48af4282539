// Package main はCLIツールのエントリポイント。
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	apiURL  string
	token   string
	output  string
	timeout time.Duration
)

// HTTPクライアント
var httpClient *http.Client

func main() {
	rootCmd := &cobra.Command{
		Use:   "constructctl",
		Short: "Construct Sync Backend CLI",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if apiURL == "" {
				apiURL = os.Getenv("CONSTRUCTCTL_API_URL")
			}
			if token == "" {
				token = os.Getenv("CONSTRUCTCTL_TOKEN")
			}
			httpClient = &http.Client{Timeout: timeout}
		},
	}

	// グローバルフラグ
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API endpoint URL (or set CONSTRUCTCTL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (or set CONSTRUCTCTL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "text", "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// サブコマンド登録
	rootCmd.AddCommand(sitesCmd())
	rootCmd.AddCommand(jobsCmd())
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd はバージョン情報を表示する。
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("constructctl version %s\n", version)
		},
	}
}

// apiGet は認証付きGETリクエストを実行してレスポンスボディを返す。
func apiGet(path string) ([]byte, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("--api-url is required (or set CONSTRUCTCTL_API_URL)")
	}
	if token == "" {
		return nil, fmt.Errorf("--token is required (or set CONSTRUCTCTL_TOKEN)")
	}

	req, err := http.NewRequest(http.MethodGet, apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// sitesCmd は現場一覧の取得コマンド。
func sitesCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/v1/sites"
			if status != "" {
				path += "?status=" + status
			}

			body, err := apiGet(path)
			if err != nil {
				return err
			}

			if output == "json" {
				fmt.Println(string(body))
				return nil
			}

			var result struct {
				Data []struct {
					ID     string `json:"id"`
					Name   string `json:"name"`
					Status string `json:"status"`
				} `json:"data"`
				Total int64 `json:"total"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("parsing response: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS")
			for _, s := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Status)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush output: %w", err)
			}
			fmt.Printf("total: %d\n", result.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	return cmd
}

// jobsCmd は作業一覧の取得コマンド。
func jobsCmd() *cobra.Command {
	var status, siteID string
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/v1/jobs"
			sep := "?"
			if status != "" {
				path += sep + "status=" + status
				sep = "&"
			}
			if siteID != "" {
				path += sep + "siteId=" + siteID
			}

			body, err := apiGet(path)
			if err != nil {
				return err
			}

			if output == "json" {
				fmt.Println(string(body))
				return nil
			}

			var result struct {
				Data []struct {
					ID       string `json:"id"`
					Title    string `json:"title"`
					Status   string `json:"status"`
					Priority string `json:"priority"`
				} `json:"data"`
				Total int64 `json:"total"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("parsing response: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY")
			for _, j := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Status, j.Priority)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush output: %w", err)
			}
			fmt.Printf("total: %d\n", result.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&siteID, "site", "", "Filter by site ID")
	return cmd
}

func handleErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("Error: %s", errResp.Message)
	}
	return fmt.Errorf("Error: server returned status %d", statusCode)
}
