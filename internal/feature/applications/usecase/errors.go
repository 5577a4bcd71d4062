// Package usecase はapplicationsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrApplicationNotFound is returned when no application matches the requested ID.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrJobNotFound is returned when the target job of an application does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrMissingFields is returned when a required application field is empty.
	ErrMissingFields = errors.New("missing required application fields")

	// ErrInvalidStatus is returned for a status outside pending/reviewed/accepted/rejected.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrAlreadyApplied is returned when the jobseeker already applied to the job.
	ErrAlreadyApplied = errors.New("already applied to this job")
)
