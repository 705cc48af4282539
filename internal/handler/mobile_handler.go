package handler

import (
	"net/http"
	"time"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/usecase"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/pkg/httputil"
)

// MobileHandler はモバイル向け読み取りエンドポイントのHTTPハンドラを提供する。
type MobileHandler struct {
	service *usecase.WorkerService
}

// NewMobileHandler は新しいMobileHandlerを生成する。
func NewMobileHandler(service *usecase.WorkerService) *MobileHandler {
	return &MobileHandler{service: service}
}

// MobileJobResponse はモバイル向けに絞った作業のレスポンス形式。
type MobileJobResponse struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	Priority string     `json:"priority"`
	SiteName string     `json:"siteName"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// MobileProfileResponse はモバイル向けプロフィールのレスポンス形式。
type MobileProfileResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Role           string `json:"role"`
	ActiveJobCount int64  `json:"activeJobCount"`
}

// MyJobs は認証済みユーザーに割り当てられた作業一覧を取得する。
func (h *MobileHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	jobs, err := h.service.MobileJobs(r.Context(), p)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]MobileJobResponse, len(jobs))
	for i, j := range jobs {
		data[i] = MobileJobResponse{
			ID:       j.ID,
			Title:    j.Title,
			Status:   string(j.Status),
			Priority: string(j.Priority),
			SiteName: j.SiteName,
			DueDate:  j.DueDate,
		}
	}
	httputil.OK(w, http.StatusOK, data)
}

// MyProfile は認証済みユーザーのプロフィールを取得する。
func (h *MobileHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	profile, err := h.service.MobileProfile(r.Context(), p)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.OK(w, http.StatusOK, MobileProfileResponse{
		ID:             profile.ID,
		Name:           profile.Name,
		Email:          profile.Email,
		Phone:          profile.Phone,
		Role:           string(profile.Role),
		ActiveJobCount: profile.ActiveJobCount,
	})
}
