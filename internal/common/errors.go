// Package common defines shared constants and sentinel errors used across
// the daylog layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Sync engine errors.
	ErrSyncInProgress = errors.New("sync already in progress")

	// Validation / entry-specific errors.
	ErrEmptyEntry      = errors.New("entry has no text and no attachments")
	ErrInvalidDateKey  = errors.New("invalid date key")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPayload  = errors.New("invalid attachment payload")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Login errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
