package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/infra"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
	Long:  "Manage database schema migrations for the construct sync backend",
}

// migrationRunner はDATABASE_URLからDBへ接続してRunnerを生成する。
func migrationRunner() (*migrate.Runner, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := infra.NewDB(dsn, false)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return migrate.NewRunner(db), nil
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long:  "Apply all registered migrations to the database, in ID order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		runner, err := migrationRunner()
		if err != nil {
			return err
		}

		applied := 0
		for _, m := range migrate.All() {
			results, err := runner.Run(ctx, m)
			if err != nil {
				// 診断情報をそのまま伝える
				return fmt.Errorf("migration %s (%s): %w", m.ID, m.Name, err)
			}
			for _, r := range results {
				if r.Applied {
					applied++
					fmt.Printf("applied  %s: %s\n", m.ID, r.Name)
				}
			}
		}

		if applied == 0 {
			fmt.Println("No pending steps.")
		} else {
			fmt.Printf("Applied %d step(s) successfully.\n", applied)
		}
		return nil
	},
}

func migrateDownCmd() *cobra.Command {
	var id string
	var confirmDataLoss bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back a migration",
		Long:  "Roll back the specified migration, reverting its steps in reverse order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			m, ok := migrate.Find(id)
			if !ok {
				return fmt.Errorf("unknown migration id %q", id)
			}
			// データ喪失を伴うマイグレーションの巻き戻しは明示的な確認が必要
			if m.Destructive && !confirmDataLoss {
				return fmt.Errorf("migration %s is destructive; re-run with --confirm-data-loss to proceed", id)
			}

			runner, err := migrationRunner()
			if err != nil {
				return err
			}

			if err := runner.Rollback(ctx, m); err != nil {
				return fmt.Errorf("rollback %s (%s): %w", m.ID, m.Name, err)
			}

			fmt.Printf("Rolled back migration %s (%s).\n", m.ID, m.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Migration ID to roll back (required)")
	cmd.Flags().BoolVar(&confirmDataLoss, "confirm-data-loss", false, "Confirm rollback of a destructive migration")
	cmd.MarkFlagRequired("id")
	return cmd
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  "Show the applied/pending status of every registered migration step",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		runner, err := migrationRunner()
		if err != nil {
			return err
		}

		statuses, err := runner.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

		// テーブル形式で出力
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tNAME\tSTEP\tSTATUS")
		fmt.Fprintln(w, "---------\t----\t----\t------")
		for _, s := range statuses {
			status := "pending"
			if s.Applied {
				status = "applied"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.MigrationID, s.Migration, s.Step, status)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to flush output: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd())
	migrateCmd.AddCommand(migrateStatusCmd)
}
