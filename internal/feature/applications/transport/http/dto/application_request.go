// Package dto はapplicationsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "job_portal_backend/internal/feature/applications/domain/entity"

// ApplyReq はPOST /api/jobs/:id/applyのリクエストボディです。
// 必須項目のチェックはユースケースで行います。
type ApplyReq struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	JobTitle    string `json:"jobTitle"`
	ResumeLink  string `json:"resumeLink"`
	LinkedIn    string `json:"linkedin"`
	Portfolio   string `json:"portfolio"`
	Experience  string `json:"experience"`
	Education   string `json:"education"`
	CoverLetter string `json:"coverLetter"`
}

// ToSubmission はリクエストを応募入力に変換します。
func (r ApplyReq) ToSubmission() entity.Submission {
	return entity.Submission{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Location:    r.Location,
		JobTitle:    r.JobTitle,
		ResumeLink:  r.ResumeLink,
		LinkedIn:    r.LinkedIn,
		Portfolio:   r.Portfolio,
		Experience:  r.Experience,
		Education:   r.Education,
		CoverLetter: r.CoverLetter,
	}
}

// StatusReq はPATCH /api/applications/:idのリクエストボディです。
type StatusReq struct {
	Status string `json:"status"`
}

// ListQuery は応募一覧の絞り込みパラメータです。
type ListQuery struct {
	UserID uint `form:"userId"`
	JobID  uint `form:"jobId"`
}

// ApplicationRes は作成・更新時のレスポンスです。
type ApplicationRes struct {
	Message     string              `json:"message"`
	Application *entity.Application `json:"application"`
}
