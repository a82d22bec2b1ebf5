package util

import (
	"errors"
	"fmt"
)

var (
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrSessionNotFound     = errors.New("authoring session not found")
	ErrPreviewNotFound     = errors.New("preview session not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrDebateNotFound      = errors.New("debate not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrQuestionNotInScope  = errors.New("question does not belong to this assessment")
	ErrInvalidTransition   = errors.New("operation not allowed in current state")
	ErrNoQuestions         = errors.New("assessment has no questions")
	ErrFutureDate          = errors.New("date is in the future and read-only")
	ErrDuplicate           = errors.New("entity already exists")
)

// ValidationError 描述一次写入被拒绝的字段及原因
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidation 如果 err 链中有 ValidationError 则返回它
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrPreviewNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrDebateNotFound) ||
		errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNoQuestions) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrDuplicate)
}
