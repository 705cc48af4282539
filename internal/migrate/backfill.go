package migrate

import (
	"fmt"

	"gorm.io/gorm"
)

// RequiredColumn はデータを持つテーブルへのNOT NULL列の導入を表す。
//
// 適用は必ず4段階で行う:
//  1. NULL許可でカラムを追加する
//  2. Backfillで既存行ごとに決定的なデフォルト値を計算して埋める
//  3. DeleteOrphansでデフォルト値を導出できなかった行を削除する
//  4. NOT NULL制約を付与する
//
// 段階を飛ばすと制約違反で適用全体が失敗する。
type RequiredColumn struct {
	Table         string
	Column        string
	Definition    string // カラムの型定義（例: "uuid"）
	Backfill      string // 既存行へデフォルト値を設定するUPDATE文
	DeleteOrphans string // デフォルト値を導出できない行を削除するDELETE文
}

// Step は4段階のバックフィルを1ステップとして返す。
func (c RequiredColumn) Step() Step {
	return Step{
		Name: fmt.Sprintf("add required column %s.%s", c.Table, c.Column),
		Probe: func(tx *gorm.DB) (bool, error) {
			return tx.Migrator().HasColumn(c.Table, c.Column), nil
		},
		Apply: func(tx *gorm.DB) error {
			addSQL := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.Table, c.Column, c.Definition)
			if err := tx.Exec(addSQL).Error; err != nil {
				return fmt.Errorf("add column: %w", err)
			}
			if err := tx.Exec(c.Backfill).Error; err != nil {
				return fmt.Errorf("backfill: %w", err)
			}
			if err := tx.Exec(c.DeleteOrphans).Error; err != nil {
				return fmt.Errorf("delete orphans: %w", err)
			}
			if err := setNotNull(tx, c.Table, c.Column); err != nil {
				return fmt.Errorf("set not null: %w", err)
			}
			return nil
		},
		Revert: func(tx *gorm.DB) error {
			return tx.Migrator().DropColumn(c.Table, c.Column)
		},
	}
}

// setNotNull はカラムにNOT NULL制約を付与する。
// sqlite（テスト用ダイアレクト）はALTER COLUMNをサポートしないため、PostgreSQLのみ発行する。
func setNotNull(tx *gorm.DB, table, column string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", table, column)).Error
}
