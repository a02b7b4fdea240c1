package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raykavin/launchdash"
	"github.com/raykavin/launchdash/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Command line flags
var (
	configFile string
	csvFile    string
	sqliteFile string
)

func main() {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:     "launchdash",
		Short:   "Launch records dashboard",
		Version: "1.0.0",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv(".env")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (e.g. ./launchdash.yaml)")
	rootCmd.PersistentFlags().String("data", config.DefaultDataFile, "Launch records CSV file")
	rootCmd.PersistentFlags().String("sqlite", "", "Load launch records from a SQLite database instead of CSV")
	_ = v.BindPFlag(config.KeyDataFile, rootCmd.PersistentFlags().Lookup("data"))
	_ = v.BindPFlag(config.KeyDataSQLite, rootCmd.PersistentFlags().Lookup("sqlite"))

	rootCmd.AddCommand(buildServeCmd(v))
	rootCmd.AddCommand(buildSummaryCmd(v))
	rootCmd.AddCommand(buildImportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildServeCmd(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			dashboard, err := launchdash.NewDashboard(cfg)
			if err != nil {
				return err
			}
			defer dashboard.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return dashboard.Run(ctx)
		},
	}

	serveCmd.Flags().IntP("port", "p", config.DefaultServerPort, "HTTP port")
	serveCmd.Flags().Bool("debug", false, "Serve the unminified dashboard script")
	_ = v.BindPFlag(config.KeyServerPort, serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyServerDebug, serveCmd.Flags().Lookup("debug"))

	return serveCmd
}

func buildSummaryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print launch statistics per site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			dataset, err := launchdash.LoadDataset(cfg.Data)
			if err != nil {
				return err
			}

			return launchdash.PrintSummary(cmd.OutOrStdout(), dataset)
		},
	}
}

func buildImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import a launch records CSV into a SQLite database",
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchdash.Import(csvFile, sqliteFile, launchdash.DefaultLog)
		},
	}

	importCmd.Flags().StringVarP(&csvFile, "input", "i", "", "Launch records CSV file")
	importCmd.Flags().StringVarP(&sqliteFile, "output", "o", "", "SQLite database file (e.g. ./launches.db)")
	importCmd.MarkFlagRequired("input")
	importCmd.MarkFlagRequired("output")

	return importCmd
}
