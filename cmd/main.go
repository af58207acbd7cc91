package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "store-console",
		Short: "Management console for the store API",
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the store-console version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	cfgFile string
	version string
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	rootCmd.AddCommand(versionCmd, serveCmd, dashboardCmd, productsCmd, salesCmd, exportCmd, importCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Default().Error("command failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
