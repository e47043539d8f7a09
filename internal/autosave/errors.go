package autosave

import (
	"errors"
	"fmt"
)

// SaveErrorCode categorizes save failures.
type SaveErrorCode string

const (
	// CodeDraftLimitReached means the owner's unpublished-document quota
	// is full, so the first commit of a new draft was refused.
	CodeDraftLimitReached SaveErrorCode = "DRAFT_LIMIT_REACHED"

	// CodePublishLimitReached means the owner's published-document quota
	// is full, so the publish transition was refused.
	CodePublishLimitReached SaveErrorCode = "PUBLISH_LIMIT_REACHED"

	// CodePersistenceFailed means the durable write (or a read it
	// depends on) failed. The fingerprint is not advanced, so the next
	// cycle retries the same content.
	CodePersistenceFailed SaveErrorCode = "PERSISTENCE_FAILED"
)

// SaveError is a commit or publish failure with a machine-readable code.
// Quota codes are distinguishable so a UI can prompt an upgrade instead of
// showing a generic failure.
type SaveError struct {
	Code    SaveErrorCode
	Message string
	Err     error // underlying cause, optional
}

// Error implements the error interface.
func (e *SaveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *SaveError) Unwrap() error {
	return e.Err
}

// IsDraftLimitReached reports whether err is a draft-quota rejection.
// Uses errors.As to handle wrapped errors.
func IsDraftLimitReached(err error) bool {
	return hasCode(err, CodeDraftLimitReached)
}

// IsPublishLimitReached reports whether err is a publish-quota rejection.
// Uses errors.As to handle wrapped errors.
func IsPublishLimitReached(err error) bool {
	return hasCode(err, CodePublishLimitReached)
}

// IsPersistenceFailure reports whether err is a store/transport failure.
// Uses errors.As to handle wrapped errors.
func IsPersistenceFailure(err error) bool {
	return hasCode(err, CodePersistenceFailed)
}

func hasCode(err error, code SaveErrorCode) bool {
	var se *SaveError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func newDraftLimitError(ownerID string, count, limit int) *SaveError {
	return &SaveError{
		Code:    CodeDraftLimitReached,
		Message: fmt.Sprintf("owner %s has %d unpublished documents (limit %d)", ownerID, count, limit),
	}
}

func newPublishLimitError(ownerID string, count, limit int) *SaveError {
	return &SaveError{
		Code:    CodePublishLimitReached,
		Message: fmt.Sprintf("owner %s has %d published documents (limit %d)", ownerID, count, limit),
	}
}

func newPersistenceError(message string, err error) *SaveError {
	return &SaveError{
		Code:    CodePersistenceFailed,
		Message: message,
		Err:     err,
	}
}
