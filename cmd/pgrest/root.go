package main

import (
	"fmt"
	"os"

	"github.com/edgeflare/pgrest/pkg/config"
	"github.com/edgeflare/pgrest/pkg/postgrest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string
var logLevel string
var cfg *config.Config
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "pgrest",
	Short: "pgrest is a PostgREST command line client",
	Long:  `pgrest builds PostgREST requests from flags and prints the JSON response`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Println(config.Version)
			return
		}

		cmd.Help()
	},
}

func Main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pgrest.yaml)")
	f.StringVarP(&logLevel, "log-level", "L", "", "log at this level (debug, info, warn, error)")
	f.String("url", "", "PostgREST base URL")
	f.String("schema", "", "database schema (Accept-Profile/Content-Profile)")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version number")

	rootCmd.AddCommand(queryCmd, insertCmd, updateCmd, deleteCmd, rpcCmd)
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// flag overrides
	f := cmd.Root().PersistentFlags()
	if v, _ := f.GetString("url"); v != "" {
		cfg.URL = v
	}
	if v, _ := f.GetString("schema"); v != "" {
		cfg.Schema = v
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return nil
}

func newClient() (*postgrest.Client, error) {
	return cfg.NewClient(logger)
}
