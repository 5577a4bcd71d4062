// Package adapters はjobsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"job_portal_backend/internal/feature/jobs/domain/entity"
	"job_portal_backend/internal/feature/jobs/usecase"
	"job_portal_backend/internal/shared/gormerr"
)

// likeEscaper はLIKEパターン中のワイルドカードをリテラルとして扱うためのエスケープです。
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// jobRepository はJobRepositoryインターフェースのGORM実装です。
type jobRepository struct {
	db *gorm.DB
}

// jobRepositoryがJobRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.JobRepository = (*jobRepository)(nil)

// NewJobRepository は指定されたgorm.DB接続でjobRepositoryの新しいインスタンスを生成します。
func NewJobRepository(db *gorm.DB) *jobRepository {
	return &jobRepository{db: db}
}

// Create は求人をデータベースに追加します。
func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID はIDで求人を取得します。
func (r *jobRepository) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if gormerr.IsNotFound(err) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// List は条件に一致する求人を掲載日の降順（同時刻はID降順）で返します。
func (r *jobRepository) List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	q := r.db.WithContext(ctx).Model(&entity.Job{})
	if s := strings.TrimSpace(filter.Title); s != "" {
		q = q.Where("LOWER(title) LIKE ? ESCAPE '!'", containsPattern(s))
	}
	if s := strings.TrimSpace(filter.Location); s != "" {
		q = q.Where("LOWER(location) LIKE ? ESCAPE '!'", containsPattern(s))
	}
	if s := strings.TrimSpace(filter.Category); s != "" {
		q = q.Where("category = ?", s)
	}
	if filter.EmployerID != 0 {
		q = q.Where("employer_id = ?", filter.EmployerID)
	}

	jobs := []entity.Job{}
	if err := q.Order("posted_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update は求人の可変フィールドを保存します。EmployerIDとPostedAtは更新しません。
func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	res := r.db.WithContext(ctx).
		Model(job).
		Select("*").
		Omit("id", "employer_id", "posted_at").
		Updates(job)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrJobNotFound
	}
	return nil
}

// Delete は求人と、その求人への応募を同一トランザクションで削除します。
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM applications WHERE job_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrJobNotFound
		}
		return nil
	})
}

// containsPattern は大文字小文字を区別しない部分一致用のLIKEパターンを生成します。
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
