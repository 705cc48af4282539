package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound は対象エンティティが存在しない、またはテナントから見えない場合のエラー。
	ErrNotFound = errors.New("not found")

	// ErrForbidden はロールまたはテナントが要求を満たさない場合のエラー。
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized は認証済みプリンシパルが存在しない場合のエラー。
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation は入力が不正な場合のエラー。
	ErrValidation = errors.New("validation failed")

	// ErrConflict は一意制約違反など重複が発生した場合のエラー。
	ErrConflict = errors.New("conflict")
)

// ErrNoFieldsToUpdate は更新対象フィールドが1つも指定されていない場合のエラー。
var ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", ErrValidation)
