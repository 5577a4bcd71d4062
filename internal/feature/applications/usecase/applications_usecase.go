package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/domain/access"
	"job_portal_backend/internal/feature/applications/domain/entity"
)

// ApplicationRepository は応募の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ApplicationRepository interface {
	// FindJob は応募先の求人概要を取得します。存在しない場合はErrJobNotFoundを返します。
	FindJob(ctx context.Context, jobID uint) (*entity.JobSummary, error)
	// Create は応募を保存します。同一求人への重複応募はErrAlreadyAppliedを返します。
	Create(ctx context.Context, app *entity.Application) error
	// FindByID は求人と応募者の概要付きで応募を取得します。
	FindByID(ctx context.Context, id uint) (*entity.Application, error)
	// List は条件に一致する応募を応募日の新しい順に返します。
	List(ctx context.Context, filter entity.ApplicationFilter) ([]entity.Application, error)
	// UpdateStatus は応募の状態を更新します。
	UpdateStatus(ctx context.Context, id uint, status entity.Status) error
}

// EventPublisher は応募イベントの発行先を抽象化します。
type EventPublisher interface {
	Publish(ctx context.Context, ev entity.ApplicationEvent) error
}

// applicationsUsecase は応募操作のユースケースを実装します。
type applicationsUsecase struct {
	apps      ApplicationRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewApplicationsUsecase はapplicationsUsecaseの新しいインスタンスを生成します。
// publisherがnilの場合、イベントは発行されません。
func NewApplicationsUsecase(apps ApplicationRepository, publisher EventPublisher) *applicationsUsecase {
	return &applicationsUsecase{apps: apps, publisher: publisher, now: time.Now}
}

// Apply は求職者の応募を受け付けます。
// 判定順: ロール(403) → 必須項目(400) → 求人の存在(404) → 重複(409)
func (u *applicationsUsecase) Apply(ctx context.Context, caller access.Caller, jobID uint, sub entity.Submission) (*entity.Application, error) {
	if err := access.Authorize(caller, access.Apply, access.Resource{}); err != nil {
		return nil, err
	}
	sub = sub.Normalize()
	if !sub.Complete() {
		return nil, ErrMissingFields
	}

	job, err := u.apps.FindJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	app := &entity.Application{
		JobID:       job.ID,
		ApplicantID: caller.UserID,
		FullName:    sub.FullName,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Location:    sub.Location,
		JobTitle:    sub.JobTitle,
		ResumeLink:  sub.ResumeLink,
		LinkedIn:    sub.LinkedIn,
		Portfolio:   sub.Portfolio,
		Experience:  sub.Experience,
		Education:   sub.Education,
		CoverLetter: sub.CoverLetter,
		Status:      entity.StatusPending,
		AppliedAt:   u.now().UTC(),
	}
	if err := u.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	app.Job = job

	u.publish(ctx, entity.NewEvent(entity.EventSubmitted, app, app.AppliedAt))
	return app, nil
}

// List は呼び出し元に見える応募の一覧を返します。
// userID/jobIDは呼び出し元のスコープをさらに絞り込む場合にのみ有効です。
func (u *applicationsUsecase) List(ctx context.Context, caller access.Caller, userID, jobID uint) ([]entity.Application, error) {
	scope, err := access.ScopeApplications(caller)
	if err != nil {
		return nil, err
	}
	scope = scope.Narrow(userID, jobID)
	if scope.Empty {
		return []entity.Application{}, nil
	}
	return u.apps.List(ctx, entity.ApplicationFilter{
		ApplicantID: scope.ApplicantID,
		EmployerID:  scope.EmployerID,
		JobID:       scope.JobID,
	})
}

// Get は応募を1件返します。応募者本人または求人の所有者のみ参照できます。
func (u *applicationsUsecase) Get(ctx context.Context, caller access.Caller, id uint) (*entity.Application, error) {
	app, err := u.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, access.ViewApplication, resourceOf(app)); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus は応募の状態を変更します。
// 判定順: 状態値(400) → 応募の存在(404) → 求人の所有者(403)
func (u *applicationsUsecase) UpdateStatus(ctx context.Context, caller access.Caller, id uint, status entity.Status) (*entity.Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	app, err := u.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, access.UpdateApplicationStatus, resourceOf(app)); err != nil {
		return nil, err
	}

	if err := u.apps.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	app.Status = status
	app.UpdatedAt = u.now().UTC()

	u.publish(ctx, entity.NewEvent(entity.EventStatusChanged, app, app.UpdatedAt))
	return app, nil
}

// resourceOf は応募のアクセス判定に使う所有者情報を返します。
func resourceOf(app *entity.Application) access.Resource {
	res := access.Resource{AuthorID: app.ApplicantID}
	if app.Job != nil {
		res.OwnerID = app.Job.EmployerID
	}
	return res
}

// publish はイベントを発行します。失敗してもリクエストは失敗させません。
func (u *applicationsUsecase) publish(ctx context.Context, ev entity.ApplicationEvent) {
	fields := logrus.Fields{
		"event":          ev.Type,
		"application_id": ev.ApplicationID,
		"job_id":         ev.JobID,
		"status":         ev.Status,
	}
	if u.publisher == nil {
		logrus.WithFields(fields).Info("application event")
		return
	}
	if err := u.publisher.Publish(ctx, ev); err != nil {
		fields["error"] = err
		logrus.WithFields(fields).Warn("failed to publish application event")
		return
	}
	logrus.WithFields(fields).Info("application event published")
}
