package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/domain/access"
)

// MaxResumeSize は履歴書ファイルの上限サイズ（5 MiB）です。
const MaxResumeSize int64 = 5 << 20

// resumeTypes は許可する拡張子とContent-Typeの対応です。
var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ObjectStore はファイルの保存先です。保存後に参照用URLを返します。
type ObjectStore interface {
	Put(ctx context.Context, object, contentType string, r io.Reader) (string, error)
}

// ResumeFile はアップロードされたファイルのメタデータと本文です。
type ResumeFile struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type uploadsUsecase struct {
	store ObjectStore
	now   func() time.Time
}

// NewUploadsUsecase はuploadsUsecaseの新しいインスタンスを生成します。
func NewUploadsUsecase(store ObjectStore) *uploadsUsecase {
	return &uploadsUsecase{store: store, now: time.Now}
}

// UploadResume は求職者の履歴書を保存し、応募で使うURLを返します。
// オブジェクト名は resumes/<userID>-<unixMillis><ext> です。
func (u *uploadsUsecase) UploadResume(ctx context.Context, caller access.Caller, file ResumeFile) (string, error) {
	if err := access.Authorize(caller, access.UploadResume, access.Resource{}); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := resumeTypes[ext]
	if !ok {
		return "", ErrUnsupportedFileType
	}
	switch {
	case file.Size > MaxResumeSize:
		return "", ErrFileTooLarge
	case file.Size <= 0:
		return "", ErrEmptyFile
	}

	object := fmt.Sprintf("resumes/%d-%d%s", caller.UserID, u.now().UnixMilli(), ext)
	// 申告サイズを超えて読み込まない
	url, err := u.store.Put(ctx, object, contentType, io.LimitReader(file.Body, MaxResumeSize))
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{"user_id": caller.UserID, "object": object, "size": file.Size}).Info("resume uploaded")
	return url, nil
}
