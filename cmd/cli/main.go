package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "expenses-cli",
		Short: "Travel expense API CLI tool",
		Long:  `A command line interface for interacting with the travel expense API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the expense API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}
	rootCmd.AddCommand(healthCmd)

	var receiptFile string
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Submit a receipt from a JSON file",
		Run: func(cmd *cobra.Command, args []string) {
			ingestReceipt(receiptFile)
		},
	}
	ingestCmd.Flags().StringVarP(&receiptFile, "file", "f", "", "Path to the receipt JSON file")
	ingestCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(ingestCmd)

	var userID, start, end string
	var limit, offset int
	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "List normalized expense records",
		Run: func(cmd *cobra.Command, args []string) {
			listExpenses(userID, start, end, limit, offset)
		},
	}
	expensesCmd.Flags().StringVar(&userID, "user", "", "Filter by user ID")
	expensesCmd.Flags().StringVar(&start, "start", "", "Event timestamp lower bound (RFC3339)")
	expensesCmd.Flags().StringVar(&end, "end", "", "Event timestamp upper bound (RFC3339)")
	expensesCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records")
	expensesCmd.Flags().IntVar(&offset, "offset", 0, "Number of records to skip")
	rootCmd.AddCommand(expensesCmd)

	var date string
	revenueCmd := &cobra.Command{
		Use:   "revenue",
		Short: "Show converted revenue for one calendar date",
		Run: func(cmd *cobra.Command, args []string) {
			dailyRevenue(date)
		},
	}
	revenueCmd.Flags().StringVar(&date, "date", "", "Calendar date (YYYY-MM-DD)")
	revenueCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(revenueCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Health check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println("Health check PASSED")
}

func ingestReceipt(path string) {
	payload, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read receipt file: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/ingest/receipt", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		fmt.Printf("Submission REJECTED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Submission accepted\n")
	if key, ok := result["idempotency_key"].(string); ok {
		fmt.Printf("Idempotency key: %s\n", key)
	}
	if msg, ok := result["message"].(string); ok {
		fmt.Printf("Message: %s\n", msg)
	}
}

func listExpenses(userID, start, end string, limit, offset int) {
	params := url.Values{}
	if userID != "" {
		params.Set("user_id", userID)
	}
	if start != "" {
		params.Set("start", start)
	}
	if end != "" {
		params.Set("end", end)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset > 0 {
		params.Set("offset", fmt.Sprintf("%d", offset))
	}

	requestURL := baseURL + "/expenses"
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(requestURL)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var expenses []map[string]any
	if err := json.Unmarshal(body, &expenses); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d expense(s)\n", len(expenses))
	for _, e := range expenses {
		fmt.Printf("  %s  %s  %v %v (%v USD)  %s\n",
			e["id"], e["timestamp"], e["amount"], e["currency"], e["amount_usd"], e["user_id"])
	}
}

func dailyRevenue(date string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/reports/daily_revenue?date=" + url.QueryEscape(date))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Date: %v\nTotal USD: %v\n", result["date"], result["total_usd"])
}
