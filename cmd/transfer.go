package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jekabolt/store-console/internal/csvexport"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:       "export [products|sales|performance]",
	Short:     "Write a table as CSV to the export directory",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"products", "sales", "performance"},
	RunE:      runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk import products from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	ctx := cmd.Context()
	var table csvexport.Table
	switch args[0] {
	case "products":
		if err := a.Products.Load(ctx); err != nil {
			return err
		}
		table = entity.Products(a.Products.Items())
	case "sales":
		if err := a.Sales.Load(ctx); err != nil {
			return err
		}
		table = entity.Sales(a.Sales.Items())
	case "performance":
		if err := a.Dashboard.Reload(ctx); err != nil {
			return err
		}
		table = a.Dashboard.Snapshot().Performance()
	}

	path, err := a.Exporter.Write(table, args[0], time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "exported", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("can't open %s: %w", args[0], err)
	}
	defer f.Close()

	ack, err := a.Importer.Import(cmd.Context(), args[0], f)
	if err != nil {
		return err
	}
	msg := ack.Message
	if msg == "" {
		msg = "CSV imported successfully"
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
