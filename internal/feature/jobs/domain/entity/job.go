// Package entity はjobsフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// SalaryType は給与の支払い単位です。未指定（空文字）も許容されます。
type SalaryType string

const (
	SalaryPerMonth SalaryType = "per_month"
	SalaryPerAnnum SalaryType = "per_annum"
	SalaryPerHour  SalaryType = "per_hour"
)

// Valid は給与単位が既知の値、または未指定であるかを判定します。
func (s SalaryType) Valid() bool {
	switch s {
	case "", SalaryPerMonth, SalaryPerAnnum, SalaryPerHour:
		return true
	}
	return false
}

// Currency は給与の通貨コードです。
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"

	// DefaultCurrency は通貨が未指定の場合に設定される値です。
	DefaultCurrency = CurrencyINR
)

// Valid は通貨コードがサポート対象かを判定します。
func (c Currency) Valid() bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Job は雇用者が掲載する求人です。作成と同時に公開され、削除は物理削除です。
type Job struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Requirements string     `gorm:"type:text" json:"requirements"`
	Company      string     `gorm:"size:255" json:"company"`
	Location     string     `gorm:"size:255" json:"location"`
	Category     string     `gorm:"size:100;index" json:"category"`
	SalaryMin    *float64   `json:"salaryMin,omitempty"`
	SalaryMax    *float64   `json:"salaryMax,omitempty"`
	SalaryType   SalaryType `gorm:"size:20" json:"salaryType,omitempty"`
	Currency     Currency   `gorm:"size:3" json:"currency"`
	Type         string     `gorm:"size:50" json:"type"`
	EmployerID   uint       `gorm:"not null;index" json:"employerId"`
	PostedAt     time.Time  `gorm:"index" json:"postedDate"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// JobFilter は求人一覧の検索条件です。
//   - Title, Location: 大文字小文字を区別しない部分一致
//   - Category: 完全一致
//   - EmployerID: 0以外の場合、その雇用者の求人に限定
type JobFilter struct {
	Title      string
	Location   string
	Category   string
	EmployerID uint
}

// JobPatch は求人の部分更新です。nilのフィールドは変更しません。
// EmployerIDとPostedAtは更新対象外です。
type JobPatch struct {
	Title        *string
	Description  *string
	Requirements *string
	Company      *string
	Location     *string
	Category     *string
	SalaryMin    *float64
	SalaryMax    *float64
	SalaryType   *SalaryType
	Currency     *Currency
	Type         *string
}

// Apply はパッチの指定フィールドを求人に反映します。
func (j *Job) Apply(p JobPatch) {
	setString(&j.Title, p.Title)
	setString(&j.Description, p.Description)
	setString(&j.Requirements, p.Requirements)
	setString(&j.Company, p.Company)
	setString(&j.Location, p.Location)
	setString(&j.Category, p.Category)
	setString(&j.Type, p.Type)
	if p.SalaryMin != nil {
		v := *p.SalaryMin
		j.SalaryMin = &v
	}
	if p.SalaryMax != nil {
		v := *p.SalaryMax
		j.SalaryMax = &v
	}
	if p.SalaryType != nil {
		j.SalaryType = *p.SalaryType
	}
	if p.Currency != nil {
		j.Currency = *p.Currency
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
