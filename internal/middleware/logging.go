package middleware

import (
	"context"
	"log/slog"
	"time"
)

// WriteAuditLog は書き込み系操作の監査ログを出力する。
func WriteAuditLog(ctx context.Context, operation, companyID, entityID, result string) {
	slog.InfoContext(ctx, "operation completed",
		"operation", operation,
		"company_id", companyID,
		"entity_id", entityID,
		"result", result,
		"timestamp", time.Now().UTC().Format(time.RFC3339),
	)
}
