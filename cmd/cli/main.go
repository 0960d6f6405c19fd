package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/moneybook/internal/numerals"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneybook-cli",
		Short: "Moneybook CLI tool",
		Long:  `A command line interface for interacting with the Moneybook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Moneybook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Transaction commands
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	var (
		listNature   string
		listSearch   string
		listPage     int
		listPageSize int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(listNature, listSearch, listPage, listPageSize)
		},
	}
	listCmd.Flags().StringVar(&listNature, "nature", "", "Filter by nature (IN, EX, TF, DEBT)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Free-text search")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 20, "Page size")

	transactionsCmd.AddCommand(listCmd)
	rootCmd.AddCommand(transactionsCmd)

	spellCmd := &cobra.Command{
		Use:   "spell [number]",
		Short: "Spell out a number in words",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			spell(args[0])
		},
	}
	rootCmd.AddCommand(spellCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listTransactions(nature, search string, page, pageSize int) {
	params := url.Values{}
	if nature != "" {
		params.Set("nature", nature)
	}
	if search != "" {
		params.Set("search", search)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/transactions?" + params.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Listing FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		Data []struct {
			ID            string `json:"id"`
			Date          string `json:"date"`
			Amount        int64  `json:"amount"`
			Notes         string `json:"notes"`
			Nature        string `json:"nature"`
			AmountInWords string `json:"amount_in_words"`
		} `json:"data"`
		Total   int    `json:"total"`
		Warning string `json:"warning"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if result.Warning != "" {
		fmt.Printf("Warning: %s\n", result.Warning)
	}

	for _, tx := range result.Data {
		fmt.Printf("%s  %-4s %12d  %s (%s)\n", tx.Date, tx.Nature, tx.Amount, tx.Notes, tx.AmountInWords)
	}
	fmt.Printf("Total: %d\n", result.Total)
}

func spell(raw string) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Printf("Not an integer: %s\n", raw)
		os.Exit(1)
	}

	fmt.Println(numerals.Render(value))
}
