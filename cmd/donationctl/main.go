package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"donations/internal/adapter/repo"
	"donations/internal/domain"
	"donations/internal/infra"
)

func main() {
	// Both files are optional. Load never overrides, so .env.local wins.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		databaseURL = os.Getenv("DATABASE_URL")
		appEnv      = envOr("APP_ENV", "development")
	)

	root := &cobra.Command{
		Use:          "donationctl",
		Short:        "Operator tooling for the donations Postgres store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return fmt.Errorf("missing database url (flag --database-url or env DATABASE_URL)")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", databaseURL, "Postgres connection string (env DATABASE_URL)")

	logger := func() zerolog.Logger { return infra.NewLoggerTo(os.Stderr, appEnv) }

	dbcheckCmd := &cobra.Command{
		Use:   "dbcheck",
		Short: "Check that the database accepts connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := dbcheck(ctx, databaseURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the donations table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), databaseURL, logger(), func(ctx context.Context, pg *repo.DonationRepositoryPG) error {
				if err := pg.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrated")
				return nil
			})
		},
	}

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Validate and insert donations from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seedFile == "" {
				return fmt.Errorf("--file is required")
			}
			f, err := os.Open(seedFile)
			if err != nil {
				return err
			}
			defer f.Close()
			candidates, err := loadSeedFile(f)
			if err != nil {
				return fmt.Errorf("%s: %w", seedFile, err)
			}
			return withRepository(cmd.Context(), databaseURL, logger(), func(ctx context.Context, pg *repo.DonationRepositoryPG) error {
				if err := pg.Migrate(ctx); err != nil {
					return err
				}
				res, err := seedDonations(ctx, pg, domain.NewValidator(), candidates, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created=%d rejected=%d\n", res.Created, res.Rejected)
				if res.Rejected > 0 {
					return fmt.Errorf("%d donations rejected", res.Rejected)
				}
				return nil
			})
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file with a list of donations")

	root.AddCommand(dbcheckCmd, migrateCmd, seedCmd)
	return root
}

// dbcheck opens a plain database/sql connection so it exercises the same
// driver path external tools use.
func dbcheck(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("query database: %w", err)
	}
	return nil
}

func withRepository(parent context.Context, databaseURL string, logger zerolog.Logger, fn func(context.Context, *repo.DonationRepositoryPG) error) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, repo.NewDonationRepository(infra.NewSQLRunner(pool, logger)))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
