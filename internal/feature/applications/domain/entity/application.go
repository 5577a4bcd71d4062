// Package entity はapplicationsフィーチャーのドメインエンティティを定義します。
package entity

import (
	"strings"
	"time"
)

// Status は応募の選考状態です。
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Valid は状態が4つの既知の値のいずれかであるかを判定します。
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// JobSummary は応募に付随する求人の概要です。
type JobSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	EmployerID uint   `json:"employerId"`
}

// ApplicantSummary は応募者の概要です。
type ApplicantSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Application は求職者による求人への応募です。
// 読み取り時にはJobとApplicantが付与されます。
type Application struct {
	ID          uint              `json:"id"`
	JobID       uint              `json:"jobId"`
	ApplicantID uint              `json:"userId"`
	FullName    string            `json:"fullName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Location    string            `json:"location"`
	JobTitle    string            `json:"jobTitle"`
	ResumeLink  string            `json:"resumeLink"`
	LinkedIn    string            `json:"linkedin"`
	Portfolio   string            `json:"portfolio"`
	Experience  string            `json:"experience"`
	Education   string            `json:"education"`
	CoverLetter string            `json:"coverLetter"`
	Status      Status            `json:"status"`
	AppliedAt   time.Time         `json:"appliedAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Job         *JobSummary       `json:"job,omitempty"`
	Applicant   *ApplicantSummary `json:"user,omitempty"`
}

// Submission は応募フォームの入力です。
type Submission struct {
	FullName    string
	Email       string
	Phone       string
	Location    string
	JobTitle    string
	ResumeLink  string
	LinkedIn    string
	Portfolio   string
	Experience  string
	Education   string
	CoverLetter string
}

// Normalize は前後の空白を取り除いたコピーを返します。
func (s Submission) Normalize() Submission {
	for _, p := range []*string{
		&s.FullName, &s.Email, &s.Phone, &s.Location, &s.JobTitle, &s.ResumeLink,
		&s.LinkedIn, &s.Portfolio, &s.Experience, &s.Education, &s.CoverLetter,
	} {
		*p = strings.TrimSpace(*p)
	}
	return s
}

// Complete は必須項目がすべて入力されているかを判定します。
func (s Submission) Complete() bool {
	return s.FullName != "" && s.Email != "" && s.Phone != "" &&
		s.Location != "" && s.JobTitle != "" && s.ResumeLink != ""
}

// ApplicationFilter は応募一覧の検索条件です。ゼロ値のフィールドは条件に含めません。
//   - ApplicantID: 応募者で絞り込み
//   - EmployerID: 求人の所有者で絞り込み
//   - JobID: 求人で絞り込み
type ApplicationFilter struct {
	ApplicantID uint
	EmployerID  uint
	JobID       uint
}

// EventType は応募イベントの種別です。
type EventType string

const (
	EventSubmitted     EventType = "application.submitted"
	EventStatusChanged EventType = "application.status_changed"
)

// ApplicationEvent は応募の作成・状態変更時にブローカーへ発行されるメッセージです。
type ApplicationEvent struct {
	Type          EventType `json:"type"`
	ApplicationID uint      `json:"applicationId"`
	JobID         uint      `json:"jobId"`
	JobTitle      string    `json:"jobTitle"`
	Company       string    `json:"company"`
	ApplicantID   uint      `json:"userId"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Status        Status    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewEvent は応募からイベントを組み立てます。
func NewEvent(t EventType, app *Application, at time.Time) ApplicationEvent {
	ev := ApplicationEvent{
		Type:          t,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		JobTitle:      app.JobTitle,
		ApplicantID:   app.ApplicantID,
		FullName:      app.FullName,
		Email:         app.Email,
		Status:        app.Status,
		OccurredAt:    at.UTC(),
	}
	if app.Job != nil {
		ev.JobTitle = app.Job.Title
		ev.Company = app.Job.Company
	}
	return ev
}
