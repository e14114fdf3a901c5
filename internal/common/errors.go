// Package common contains shared constants and sentinel errors used across
// the salaysay tracker. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Auth errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrWrongEmailDomain    = errors.New("email outside the accepted domain")

	// Upload validation errors. A batch is rejected as a whole on the first
	// file that trips one of these.
	ErrWrongFileType   = errors.New("wrong file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrMissingCategory = errors.New("violation type is required")
	ErrUnknownCategory = errors.New("unknown violation type")
	ErrInvalidStatus   = errors.New("invalid status")

	// Remote-call failure kinds. The storage and database layers map provider
	// errors onto this closed set and the HTTP layer switches on it, so no
	// caller ever inspects error message text.
	ErrBucketNotFound   = errors.New("storage bucket not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIntegrity        = errors.New("relational integrity violation")
)
