// Package dto はjobsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "job_portal_backend/internal/feature/jobs/domain/entity"

// CreateJobReq はPOST /api/jobsのリクエストボディです。
type CreateJobReq struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Category     string   `json:"category"`
	SalaryMin    *float64 `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax    *float64 `json:"salaryMax" binding:"omitempty,gte=0"`
	SalaryType   string   `json:"salaryType" binding:"omitempty,salaryperiod"`
	Currency     string   `json:"currency" binding:"omitempty,currency"`
	Type         string   `json:"type"`
}

// ToEntity はリクエストを求人エンティティに変換します。
func (r CreateJobReq) ToEntity() entity.Job {
	return entity.Job{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Company:      r.Company,
		Location:     r.Location,
		Category:     r.Category,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		SalaryType:   entity.SalaryType(r.SalaryType),
		Currency:     entity.Currency(r.Currency),
		Type:         r.Type,
	}
}

// UpdateJobReq はPATCH /api/jobs/:idのリクエストボディです。
// 省略されたフィールドは変更されません。
type UpdateJobReq struct {
	Title        *string  `json:"title" binding:"omitempty,min=1"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Company      *string  `json:"company"`
	Location     *string  `json:"location"`
	Category     *string  `json:"category"`
	SalaryMin    *float64 `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax    *float64 `json:"salaryMax" binding:"omitempty,gte=0"`
	SalaryType   *string  `json:"salaryType" binding:"omitempty,salaryperiod"`
	Currency     *string  `json:"currency" binding:"omitempty,currency"`
	Type         *string  `json:"type"`
}

// ToPatch はリクエストを求人パッチに変換します。
func (r UpdateJobReq) ToPatch() entity.JobPatch {
	p := entity.JobPatch{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Company:      r.Company,
		Location:     r.Location,
		Category:     r.Category,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Type:         r.Type,
	}
	if r.SalaryType != nil {
		st := entity.SalaryType(*r.SalaryType)
		p.SalaryType = &st
	}
	if r.Currency != nil {
		cur := entity.Currency(*r.Currency)
		p.Currency = &cur
	}
	return p
}

// JobQuery は一覧取得のクエリパラメータです。
type JobQuery struct {
	Title    string `form:"title"`
	Location string `form:"location"`
	Category string `form:"category"`
}

// ToFilter はクエリを検索条件に変換します。
func (q JobQuery) ToFilter() entity.JobFilter {
	return entity.JobFilter{Title: q.Title, Location: q.Location, Category: q.Category}
}
