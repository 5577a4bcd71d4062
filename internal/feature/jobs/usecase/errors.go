// Package usecase はjobsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrJobNotFound is returned when no job matches the requested ID.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidSalaryRange is returned when salaryMin is greater than salaryMax.
	ErrInvalidSalaryRange = errors.New("min salary cannot be greater than max salary")

	// ErrInvalidJob is returned when job fields fail validation. It is wrapped with the reason.
	ErrInvalidJob = errors.New("invalid job")
)
