package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"cardgallery/internal/cards"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// outputFlags are shared by list and search.
type outputFlags struct {
	page   int
	asJSON bool
	asCSV  bool
}

var (
	listFlags   outputFlags
	searchFlags outputFlags
)

// listCmd prints every card
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all cards",
	Long: `Fetches every card from the webhook service and prints one page of
them as a table. --json and --csv print the whole list instead.

Example:
  cards list --page 2
  cards list --csv > cards.csv`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// searchCmd prints cards matching a query
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cards by name, company or designation",
	Long: `Runs a server-side search and prints the matching cards.

Example:
  cards search "Acme Corp"
  cards search jane --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	for _, c := range []struct {
		cmd   *cobra.Command
		flags *outputFlags
	}{{listCmd, &listFlags}, {searchCmd, &searchFlags}} {
		c.cmd.Flags().IntVarP(&c.flags.page, "page", "p", 1, "Page to print (1-based)")
		c.cmd.Flags().BoolVar(&c.flags.asJSON, "json", false, "Print the full list as JSON")
		c.cmd.Flags().BoolVar(&c.flags.asCSV, "csv", false, "Print the full list as CSV")
		c.cmd.MarkFlagsMutuallyExclusive("json", "csv")
	}
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	list, err := newClient().FetchAll(ctx)
	if err != nil {
		logger.Error("fetch all failed", zap.Error(err), zap.String("detail", detail(err)))
		return err
	}
	logger.Info("fetched cards", zap.Int("count", len(list)))
	return printCards(cmd.OutOrStdout(), list, listFlags, cfg.GetPageSize())
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	if strings.TrimSpace(query) == "" {
		return errors.New("search query must not be empty")
	}

	ctx, cancel := signalContext()
	defer cancel()

	list, err := newClient().Search(ctx, query)
	if err != nil {
		logger.Error("search failed", zap.String("query", query), zap.Error(err), zap.String("detail", detail(err)))
		return err
	}
	logger.Info("search complete", zap.String("query", query), zap.Int("count", len(list)))
	return printCards(cmd.OutOrStdout(), list, searchFlags, cfg.GetPageSize())
}

// detail returns the diagnostic part of a webhook error for logs.
func detail(err error) string {
	var cerr *cards.Error
	if errors.As(err, &cerr) {
		return cerr.Detail()
	}
	return err.Error()
}

// printCards writes list in the format selected by f.
func printCards(w io.Writer, list []cards.Card, f outputFlags, pageSize int) error {
	switch {
	case f.asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("failed to encode cards: %w", err)
		}
		return nil

	case f.asCSV:
		if err := gocsv.Marshal(list, w); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		return nil
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No cards found.")
		return err
	}

	pager := cards.NewPager(len(list), f.page, pageSize)
	page := cards.PageSlice(list, pager.Page, pageSize)
	offset := (pager.Page - 1) * pageSize

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "DESIGNATION", "COMPANY", "EMAIL", "PHONE")
	for i, c := range page {
		t.Row(
			fmt.Sprintf("%d", offset+i+1),
			c.Name,
			c.Designation,
			c.Company,
			c.Email,
			strings.Join(c.PhoneNumbers(), " / "),
		)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d cards)\n", pager.Page, pager.Total, len(list))
	return err
}
