package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"account/internal/observability/logging"
	impl "account/internal/service/impl"
	"account/internal/store"
	"account/pkg/db"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dsn    string
	logSQL bool
}

func newRootCommand() *cobra.Command {
	var g globalFlags
	cmd := &cobra.Command{
		Use:           "accountctl",
		Short:         "Administrative tasks for the iotMaster account service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.NewLogger(logging.Config{
				ServiceName: "accountctl",
				Environment: os.Getenv("ENVIRONMENT"),
				Level:       os.Getenv("LOG_LEVEL"),
				Output:      os.Stderr,
			}))
		},
	}
	cmd.PersistentFlags().StringVar(&g.dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres DSN (defaults to $DATABASE_URL)")
	cmd.PersistentFlags().BoolVar(&g.logSQL, "log-sql", false, "Log SQL statements")

	cmd.AddCommand(newMigrateCommand(&g))
	cmd.AddCommand(newFactoryCommand(&g))
	return cmd
}

func openStore(g *globalFlags) (*store.Store, error) {
	if g.dsn == "" {
		return nil, fmt.Errorf("database url required (--database-url or DATABASE_URL)")
	}
	gdb, err := db.OpenGorm(db.Config{DSN: g.dsn, LogSQL: g.logSQL})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return store.New(gdb), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newMigrateCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the account tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(g)
			if err != nil {
				return err
			}
			if err := st.Migrate(commandContext(cmd)); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newFactoryCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factory",
		Short: "Manage the factory device catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newFactoryAddCommand(g))
	return cmd
}

func newFactoryAddCommand(g *globalFlags) *cobra.Command {
	var apikey, deviceID string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Provision a device that users can later claim",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(g)
			if err != nil {
				return err
			}
			if err := impl.NewFactoryCatalogImpl(st).Add(commandContext(cmd), apikey, deviceID); err != nil {
				return fmt.Errorf("add factory device %s: %w", deviceID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "factory device %s provisioned\n", deviceID)
			return nil
		},
	}
	cmd.Flags().StringVar(&apikey, "apikey", "", "Factory apikey printed on the device")
	cmd.Flags().StringVar(&deviceID, "deviceid", "", "Device id, starting with the two-letter type prefix (e.g. LT0001)")
	_ = cmd.MarkFlagRequired("apikey")
	_ = cmd.MarkFlagRequired("deviceid")
	return cmd
}
