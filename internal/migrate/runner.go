package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Runner はマイグレーションを1つのトランザクション内で実行する。
type Runner struct {
	db *gorm.DB
}

// NewRunner は新しいRunnerを生成する。
func NewRunner(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// Run はマイグレーションの全ステップを宣言順に1トランザクションで実行する。
// 各ステップはProbeで存在確認し、既に適用済みならスキップする。
// いずれかのステップが失敗した場合はトランザクション全体をロールバックし、
// 元のエラーをそのまま返す（ステップkの失敗はステップ1..k-1も巻き戻す）。
func (r *Runner) Run(ctx context.Context, m Migration) ([]StepResult, error) {
	var results []StepResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range m.Steps {
			exists, err := step.Probe(tx)
			if err != nil {
				return fmt.Errorf("step %s: probe: %w", step.Name, err)
			}
			if exists {
				slog.InfoContext(ctx, "step already applied, skipping",
					"migration", m.ID,
					"step", step.Name,
				)
				results = append(results, StepResult{Name: step.Name, Applied: false})
				continue
			}
			if err := step.Apply(tx); err != nil {
				return fmt.Errorf("step %s: %w", step.Name, err)
			}
			results = append(results, StepResult{Name: step.Name, Applied: true})
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "migration failed, rolled back",
			"migration", m.ID,
			"error", err,
		)
		return nil, err
	}
	return results, nil
}

// Rollback はマイグレーションのステップを厳密に逆順で巻き戻す。
// 子が親より先（参照する側が参照される側より先）に落ちるよう、適用と逆の依存順になる。
// Probeがfalse（未適用）のステップはスキップする。commit/rollbackの規律はRunと対称。
func (r *Runner) Rollback(ctx context.Context, m Migration) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(m.Steps) - 1; i >= 0; i-- {
			step := m.Steps[i]
			if step.Revert == nil {
				return fmt.Errorf("step %s: not reversible", step.Name)
			}
			exists, err := step.Probe(tx)
			if err != nil {
				return fmt.Errorf("step %s: probe: %w", step.Name, err)
			}
			if !exists {
				slog.InfoContext(ctx, "step not applied, skipping revert",
					"migration", m.ID,
					"step", step.Name,
				)
				continue
			}
			if err := step.Revert(tx); err != nil {
				return fmt.Errorf("step %s: revert: %w", step.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "rollback failed",
			"migration", m.ID,
			"error", err,
		)
	}
	return err
}

// StepStatus はステップの適用状況を表す。
type StepStatus struct {
	MigrationID string
	Migration   string
	Step        string
	Applied     bool
}

// Status は登録済み全マイグレーションの各ステップの適用状況をProbeで調べて返す。
func (r *Runner) Status(ctx context.Context) ([]StepStatus, error) {
	var statuses []StepStatus
	db := r.db.WithContext(ctx)
	for _, m := range All() {
		for _, step := range m.Steps {
			applied, err := step.Probe(db)
			if err != nil {
				return nil, fmt.Errorf("migration %s: step %s: probe: %w", m.ID, step.Name, err)
			}
			statuses = append(statuses, StepStatus{
				MigrationID: m.ID,
				Migration:   m.Name,
				Step:        step.Name,
				Applied:     applied,
			})
		}
	}
	return statuses, nil
}
