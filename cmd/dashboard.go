package main

import (
	"fmt"
	"time"

	"github.com/jekabolt/store-console/internal/dashboard"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/jekabolt/store-console/internal/filter"
	"github.com/jekabolt/store-console/internal/format"
	"github.com/spf13/cobra"
)

var dashboardFlags struct {
	start    string
	end      string
	category int
	export   bool
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show sales metrics and revenue by product",
	RunE:  runDashboard,
}

func init() {
	f := dashboardCmd.Flags()
	f.StringVar(&dashboardFlags.start, "start", "", "start date, "+entity.DateLayout)
	f.StringVar(&dashboardFlags.end, "end", "", "end date, "+entity.DateLayout)
	f.IntVar(&dashboardFlags.category, "category", 0, "category id, 0 for all")
	f.BoolVar(&dashboardFlags.export, "export", false, "also write the revenue by product as CSV")
}

func filterPatch(start, end string, category *int) (filter.Patch, error) {
	p := filter.Patch{CategoryID: category}
	if start != "" {
		t, err := time.Parse(entity.DateLayout, start)
		if err != nil {
			return p, fmt.Errorf("invalid --start: %w", err)
		}
		p.StartDate = &t
	}
	if end != "" {
		t, err := time.Parse(entity.DateLayout, end)
		if err != nil {
			return p, fmt.Errorf("invalid --end: %w", err)
		}
		p.EndDate = &t
	}
	return p, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	var category *int
	if cmd.Flags().Changed("category") {
		category = &dashboardFlags.category
	}
	p, err := filterPatch(dashboardFlags.start, dashboardFlags.end, category)
	if err != nil {
		return err
	}

	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	ctx := cmd.Context()
	a.Dashboard.RefreshCategories(ctx)
	applied := a.Dashboard.Filter().Set(ctx, p)
	if applied.HasInvertedRange() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: start date is after end date")
	}

	snap := a.Dashboard.Snapshot()
	if snap.Status == dashboard.StatusFailed {
		return snap.Err
	}
	printDashboard(cmd, snap, a.Format)

	if dashboardFlags.export {
		path, err := a.Exporter.Write(snap.Performance(), "performance", time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "exported", path)
	}
	return nil
}

func printDashboard(cmd *cobra.Command, snap dashboard.Snapshot, f *format.Formatter) {
	m := snap.Metrics()
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "Filter\t%s\n", snap.Filter)
	if snap.Filter.CategoryID != 0 {
		fmt.Fprintf(w, "Category\t%s\n", categoryName(snap.Categories, snap.Filter.CategoryID))
	}
	fmt.Fprintf(w, "Total revenue\t%s\n", f.Money(m.TotalRevenue))
	fmt.Fprintf(w, "Transactions\t%s\n", f.Int(m.TotalTransactions))
	fmt.Fprintf(w, "Avg quantity\t%s\n", f.Number(m.AvgQuantity))
	fmt.Fprintf(w, "Avg ticket\t%s\n", f.Money(m.AvgTicket()))
	_ = w.Flush()

	rows := snap.Performance()
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNo sales for this filter.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout())
	w = newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "PRODUCT\tREVENUE\tQUANTITY")
	for _, r := range rows {
		qty := "-"
		if r.Quantity != nil {
			qty = f.Int(*r.Quantity)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, f.Money(r.Revenue), qty)
	}
	_ = w.Flush()
}
