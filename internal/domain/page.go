package domain

const (
	// DefaultPage はページ番号のデフォルト値。
	DefaultPage = 1
	// DefaultLimit は1ページあたりの件数のデフォルト値。
	DefaultLimit = 20
	// MaxLimit は1ページあたりの件数の上限。
	MaxLimit = 100
)

// PageInfo はページネーション結果のメタ情報を表す。
type PageInfo struct {
	Page    int
	Limit   int
	Total   int64
	HasMore bool
}

// NewPageInfo はページネーションメタ情報を計算する。
// hasMoreは page*limit < total で判定する。
func NewPageInfo(page, limit int, total int64) *PageInfo {
	return &PageInfo{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: int64(page)*int64(limit) < total,
	}
}

// NormalizePage はページ番号・件数を正規化する。
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
