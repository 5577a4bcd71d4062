// Package usecase はuploadsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrUnsupportedFileType is returned for anything other than .pdf, .doc or .docx.
	ErrUnsupportedFileType = errors.New("only .pdf, .doc and .docx files are allowed")

	// ErrFileTooLarge is returned when the resume exceeds MaxResumeSize.
	ErrFileTooLarge = errors.New("file exceeds the 5 MB limit")

	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("file is empty")
)
