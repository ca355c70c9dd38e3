package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iov-one/escrowd/commands/server"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	escrowd "github.com/iov-one/escrowd/cmd/escrowd/app"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagBind     = "bind"
	flagDebug    = "debug"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")

	root := &cobra.Command{
		Use:           "escrowd",
		Short:         "Token swap escrow ABCI application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(viper.GetString(flagHome))
		},
	}
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	_ = viper.BindPFlags(root.PersistentFlags())

	root.AddCommand(initCmd(), startCmd(), validateCmd(), versionCmd())
	return root
}

// loadConfig reads an optional .env file and escrowd.yaml from home.
// Environment variables use the ESCROWD_ prefix.
func loadConfig(home string) error {
	if err := godotenv.Load(filepath.Join(home, ".env")); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrInvalidInput, "load .env: %s", err)
	}
	viper.SetEnvPrefix("ESCROWD")
	viper.AutomaticEnv()
	viper.SetConfigName("escrowd")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrapf(errors.ErrInvalidInput, "read config: %s", err)
		}
	}
	return nil
}

func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "escrowd")
	level, err := log.AllowLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, level), nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [owner]",
		Short: "Initialize app state in the genesis file",
		Long: `Writes the app_state into <home>/config/genesis.json. The owner
controls two demo mints and holds their whole supply. If no owner address is
given, a key is generated and printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			return server.InitCmd(escrowd.GenInitOptions, logger, viper.GetString(flagHome), args)
		},
	}
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.StartCmd(ctx, escrowd.GenerateApp, logger,
				viper.GetString(flagHome), viper.GetString(flagBind), viper.GetBool(flagDebug))
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	_ = viper.BindPFlags(cmd.Flags())
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis.json...]",
		Short: "Load genesis files into a throwaway store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{server.GenesisPath(viper.GetString(flagHome))}
			}
			return server.ValidateGenesis(escrowd.Initializers(), args)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(weave.Version())
		},
	}
}
