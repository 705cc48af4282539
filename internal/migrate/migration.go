// Package migrate はレジストリ方式の冪等スキーママイグレーションエンジンを提供する。
//
// マイグレーション履歴テーブルは持たない。各ステップが自身の存在確認（probe）を
// 行うことで、同じマイグレーションを何度実行しても2回目以降はno-opになる。
package migrate

import (
	"sort"

	"gorm.io/gorm"
)

// Step は単一のスキーマ変更を表す。
// Probeは副作用なしに「対象のスキーマ要素が既に存在するか」を返す。
// ApplyはProbeがfalseのときだけ実行される。Revertはその逆操作。
type Step struct {
	Name   string
	Probe  func(tx *gorm.DB) (bool, error)
	Apply  func(tx *gorm.DB) error
	Revert func(tx *gorm.DB) error
}

// StepResult はステップ実行の結果を表す。
type StepResult struct {
	Name    string
	Applied bool
}

// Migration は順序付けられたステップ列を表す。
// IDはタイムスタンプ由来の順序キー。一度共有環境に適用した後は変更しない（追記のみ）。
type Migration struct {
	ID          string
	Name        string
	Destructive bool // ロールバックまたは適用がデータを破壊しうる場合にtrue
	Steps       []Step
}

var registry []Migration

// Register はマイグレーションをレジストリに登録する。各マイグレーション定義のinitから呼ぶ。
func Register(m Migration) {
	registry = append(registry, m)
}

// All は登録済みマイグレーションをID昇順で返す。
func All() []Migration {
	out := make([]Migration, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Find は指定IDのマイグレーションを返す。
func Find(id string) (Migration, bool) {
	for _, m := range registry {
		if m.ID == id {
			return m, true
		}
	}
	return Migration{}, false
}
