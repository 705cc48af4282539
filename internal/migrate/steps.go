package migrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgDuplicateObject はPostgreSQLのduplicate_objectのSQLSTATE。
const pgDuplicateObject = "42710"

// isDuplicateObject は「型が既に定義されている」等の重複定義エラーか判定する。
// 存在確認と適用の間に他プロセスが同じ型を作成した場合でも失敗にしないために使う。
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgDuplicateObject
}

// CreateTable はテーブル作成ステップを生成する。
// probeはテーブルの存在確認、revertはDROP TABLE。
func CreateTable(table, createSQL string) Step {
	return Step{
		Name: "create table " + table,
		Probe: func(tx *gorm.DB) (bool, error) {
			return tx.Migrator().HasTable(table), nil
		},
		Apply: func(tx *gorm.DB) error {
			return tx.Exec(createSQL).Error
		},
		Revert: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(table)
		},
	}
}

// AddColumn はカラム追加ステップを生成する。
func AddColumn(table, column, definition string) Step {
	return Step{
		Name: fmt.Sprintf("add column %s.%s", table, column),
		Probe: func(tx *gorm.DB) (bool, error) {
			return tx.Migrator().HasColumn(table, column), nil
		},
		Apply: func(tx *gorm.DB) error {
			return tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)).Error
		},
		Revert: func(tx *gorm.DB) error {
			return tx.Migrator().DropColumn(table, column)
		},
	}
}

// CreateIndex はインデックス作成ステップを生成する。
func CreateIndex(table, name, createSQL string) Step {
	return Step{
		Name: "create index " + name,
		Probe: func(tx *gorm.DB) (bool, error) {
			return tx.Migrator().HasIndex(table, name), nil
		},
		Apply: func(tx *gorm.DB) error {
			return tx.Exec(createSQL).Error
		},
		Revert: func(tx *gorm.DB) error {
			return tx.Exec("DROP INDEX IF EXISTS " + name).Error
		},
	}
}

// RawStep は任意のSQLを実行するステップを生成する。
// probeとrevertは呼び出し側が与える。revertにnilを渡すと巻き戻し不可のステップになる。
func RawStep(name, applySQL string, probe func(tx *gorm.DB) (bool, error), revert func(tx *gorm.DB) error) Step {
	return Step{
		Name:  name,
		Probe: probe,
		Apply: func(tx *gorm.DB) error {
			return tx.Exec(applySQL).Error
		},
		Revert: revert,
	}
}

// CreateEnum は列挙型作成ステップを生成する。
// 型の重複定義（duplicate_object）は一般の失敗と区別し、適用済みとして扱う。
func CreateEnum(name string, values ...string) Step {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return Step{
		Name: "create enum " + name,
		Probe: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Raw("SELECT count(*) FROM pg_type WHERE typname = ?", name).Scan(&count).Error
			if err != nil {
				return false, err
			}
			return count > 0, nil
		},
		Apply: func(tx *gorm.DB) error {
			err := tx.Exec(fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", name, strings.Join(quoted, ", "))).Error
			if isDuplicateObject(err) {
				return nil
			}
			return err
		},
		Revert: func(tx *gorm.DB) error {
			return tx.Exec("DROP TYPE IF EXISTS " + name).Error
		},
	}
}
