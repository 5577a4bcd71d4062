// Package adapters はapplicationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"job_portal_backend/internal/feature/applications/domain/entity"
	"job_portal_backend/internal/feature/applications/usecase"
	"job_portal_backend/internal/shared/gormerr"
)

// ApplicationModel はapplicationsテーブルの行です。
// (job_id, applicant_id) のユニークインデックスで重複応募を防ぎます。
type ApplicationModel struct {
	ID          uint      `gorm:"primaryKey"`
	JobID       uint      `gorm:"not null;uniqueIndex:idx_applications_job_applicant"`
	ApplicantID uint      `gorm:"not null;uniqueIndex:idx_applications_job_applicant;index"`
	FullName    string    `gorm:"size:255;not null"`
	Email       string    `gorm:"size:255;not null"`
	Phone       string    `gorm:"size:50;not null"`
	Location    string    `gorm:"size:255;not null"`
	JobTitle    string    `gorm:"size:255;not null"`
	ResumeLink  string    `gorm:"size:1024;not null"`
	LinkedIn    string    `gorm:"column:linkedin;size:512"`
	Portfolio   string    `gorm:"size:512"`
	Experience  string    `gorm:"type:text"`
	Education   string    `gorm:"type:text"`
	CoverLetter string    `gorm:"type:text"`
	Status      string    `gorm:"size:20;not null;index"`
	AppliedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Job       *jobRef  `gorm:"foreignKey:JobID;-:migration"`
	Applicant *userRef `gorm:"foreignKey:ApplicantID;-:migration"`
}

// TableName はテーブル名を返します。
func (ApplicationModel) TableName() string { return "applications" }

// jobRef はjobsテーブルの読み取り専用ビューです。
type jobRef struct {
	ID         uint
	Title      string
	Company    string
	EmployerID uint
}

func (jobRef) TableName() string { return "jobs" }

// userRef はusersテーブルの読み取り専用ビューです。
type userRef struct {
	ID    uint
	Name  string
	Email string
}

func (userRef) TableName() string { return "users" }

// applicationRepository はApplicationRepositoryインターフェースのGORM実装です。
type applicationRepository struct {
	db *gorm.DB
}

// applicationRepositoryがApplicationRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ApplicationRepository = (*applicationRepository)(nil)

// NewApplicationRepository は指定されたgorm.DB接続でapplicationRepositoryの新しいインスタンスを生成します。
func NewApplicationRepository(db *gorm.DB) *applicationRepository {
	return &applicationRepository{db: db}
}

// FindJob は応募先の求人概要を取得します。
func (r *applicationRepository) FindJob(ctx context.Context, jobID uint) (*entity.JobSummary, error) {
	var ref jobRef
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&ref).Error; err != nil {
		if gormerr.IsNotFound(err) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	return ref.summary(), nil
}

// Create は応募を保存し、IDを設定します。
func (r *applicationRepository) Create(ctx context.Context, app *entity.Application) error {
	if app == nil {
		return errors.New("application is nil")
	}
	m := fromEntity(app)
	if m.AppliedAt.IsZero() {
		m.AppliedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		if gormerr.IsDuplicateKey(err) {
			return usecase.ErrAlreadyApplied
		}
		return err
	}
	app.ID = m.ID
	app.AppliedAt = m.AppliedAt
	app.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID は求人と応募者の概要付きで応募を取得します。
func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	var m ApplicationModel
	err := r.withRefs(ctx).Where("applications.id = ?", id).First(&m).Error
	if err != nil {
		if gormerr.IsNotFound(err) {
			return nil, usecase.ErrApplicationNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// List は条件に一致する応募を応募日の降順（同時刻はID降順）で返します。
func (r *applicationRepository) List(ctx context.Context, filter entity.ApplicationFilter) ([]entity.Application, error) {
	q := r.withRefs(ctx).Model(&ApplicationModel{})
	if filter.EmployerID != 0 {
		q = q.Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.employer_id = ?", filter.EmployerID)
	}
	if filter.ApplicantID != 0 {
		q = q.Where("applications.applicant_id = ?", filter.ApplicantID)
	}
	if filter.JobID != 0 {
		q = q.Where("applications.job_id = ?", filter.JobID)
	}

	var rows []ApplicationModel
	if err := q.Order("applications.applied_at DESC").Order("applications.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Application, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toEntity())
	}
	return out, nil
}

// UpdateStatus は応募の状態を更新します。
func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status entity.Status) error {
	res := r.db.WithContext(ctx).
		Model(&ApplicationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Job").Preload("Applicant")
}

func (j *jobRef) summary() *entity.JobSummary {
	return &entity.JobSummary{ID: j.ID, Title: j.Title, Company: j.Company, EmployerID: j.EmployerID}
}

func fromEntity(a *entity.Application) *ApplicationModel {
	return &ApplicationModel{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		FullName:    a.FullName,
		Email:       a.Email,
		Phone:       a.Phone,
		Location:    a.Location,
		JobTitle:    a.JobTitle,
		ResumeLink:  a.ResumeLink,
		LinkedIn:    a.LinkedIn,
		Portfolio:   a.Portfolio,
		Experience:  a.Experience,
		Education:   a.Education,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *ApplicationModel) toEntity() *entity.Application {
	a := &entity.Application{
		ID:          m.ID,
		JobID:       m.JobID,
		ApplicantID: m.ApplicantID,
		FullName:    m.FullName,
		Email:       m.Email,
		Phone:       m.Phone,
		Location:    m.Location,
		JobTitle:    m.JobTitle,
		ResumeLink:  m.ResumeLink,
		LinkedIn:    m.LinkedIn,
		Portfolio:   m.Portfolio,
		Experience:  m.Experience,
		Education:   m.Education,
		CoverLetter: m.CoverLetter,
		Status:      entity.Status(m.Status),
		AppliedAt:   m.AppliedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Job != nil {
		a.Job = m.Job.summary()
	}
	if m.Applicant != nil {
		a.Applicant = &entity.ApplicantSummary{ID: m.Applicant.ID, Name: m.Applicant.Name, Email: m.Applicant.Email}
	}
	return a
}
