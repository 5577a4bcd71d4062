package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job_portal_backend/internal/domain/access"
	"job_portal_backend/internal/feature/jobs/domain/entity"
)

// JobRepository は求人の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type JobRepository interface {
	// Create は求人を保存し、IDを設定します。
	Create(ctx context.Context, job *entity.Job) error
	// FindByID は求人を取得します。存在しない場合はErrJobNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Job, error)
	// List は条件に一致する求人を掲載日の新しい順に返します。
	List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error)
	// Update は求人の全フィールドを保存します。
	Update(ctx context.Context, job *entity.Job) error
	// Delete は求人とその応募を削除します。存在しない場合はErrJobNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// jobsUsecase は求人操作のユースケースを実装します。
type jobsUsecase struct {
	jobs JobRepository
	now  func() time.Time
}

// NewJobsUsecase はjobsUsecaseの新しいインスタンスを生成します。
func NewJobsUsecase(jobs JobRepository) *jobsUsecase {
	return &jobsUsecase{jobs: jobs, now: time.Now}
}

// validateJob は求人のフィールドを検証し、通貨のデフォルト値を補完します。
func validateJob(j *entity.Job) error {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidJob)
	}
	if (j.SalaryMin != nil && *j.SalaryMin < 0) || (j.SalaryMax != nil && *j.SalaryMax < 0) {
		return fmt.Errorf("%w: salary must not be negative", ErrInvalidJob)
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return ErrInvalidSalaryRange
	}
	if !j.SalaryType.Valid() {
		return fmt.Errorf("%w: unknown salary type %q", ErrInvalidJob, j.SalaryType)
	}
	if j.Currency == "" {
		j.Currency = entity.DefaultCurrency
	}
	if !j.Currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidJob, j.Currency)
	}
	return nil
}

// Create は雇用者の求人を作成します。作成と同時に公開されます。
func (u *jobsUsecase) Create(ctx context.Context, caller access.Caller, job entity.Job) (*entity.Job, error) {
	if err := access.Authorize(caller, access.CreateJob, access.Resource{}); err != nil {
		return nil, err
	}
	if err := validateJob(&job); err != nil {
		return nil, err
	}

	job.ID = 0
	job.EmployerID = caller.UserID
	job.PostedAt = u.now().UTC()
	if err := u.jobs.Create(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Get は求人を1件取得します。認証は不要です。
func (u *jobsUsecase) Get(ctx context.Context, id uint) (*entity.Job, error) {
	return u.jobs.FindByID(ctx, id)
}

// List は公開の求人一覧を返します。
func (u *jobsUsecase) List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	filter.EmployerID = 0
	return u.jobs.List(ctx, filter)
}

// ListMine は呼び出し元の雇用者が掲載した求人のみを返します。
func (u *jobsUsecase) ListMine(ctx context.Context, caller access.Caller, filter entity.JobFilter) ([]entity.Job, error) {
	if err := access.Authorize(caller, access.ListOwnJobs, access.Resource{}); err != nil {
		return nil, err
	}
	filter.EmployerID = caller.UserID
	return u.jobs.List(ctx, filter)
}

// Update は求人を部分更新します。
// ロール不一致は403、求人が存在しない場合は404、所有者でない場合は403となります。
func (u *jobsUsecase) Update(ctx context.Context, caller access.Caller, id uint, patch entity.JobPatch) (*entity.Job, error) {
	job, err := u.ownedJob(ctx, caller, access.UpdateJob, id)
	if err != nil {
		return nil, err
	}

	job.Apply(patch)
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := u.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete は求人を削除します。関連する応募も同じトランザクションで削除されます。
func (u *jobsUsecase) Delete(ctx context.Context, caller access.Caller, id uint) error {
	if _, err := u.ownedJob(ctx, caller, access.DeleteJob, id); err != nil {
		return err
	}
	return u.jobs.Delete(ctx, id)
}

// ownedJob は操作対象の求人を取得し、呼び出し元が所有者であることを確認します。
// 存在確認は所有者確認より先に行います。
func (u *jobsUsecase) ownedJob(ctx context.Context, caller access.Caller, action access.Action, id uint) (*entity.Job, error) {
	if !access.CanPerform(caller.Role, action) {
		return nil, access.ErrForbidden
	}
	job, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, action, access.Resource{OwnerID: job.EmployerID}); err != nil {
		return nil, err
	}
	return job, nil
}
