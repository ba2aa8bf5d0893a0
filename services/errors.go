package services

import (
	"errors"

	"coursebuilder/models/course"
)

// ErrorKind names a specific rule that rejected a request.
type ErrorKind string

const (
	KindInvalidStatement  ErrorKind = "InvalidStatement"
	KindInvalidTaskType   ErrorKind = "InvalidTaskType"
	KindInvalidOrder      ErrorKind = "InvalidOrder"
	KindInvalidOptionText ErrorKind = "InvalidOptionText"

	KindDuplicateStatement ErrorKind = "DuplicateStatement"
	KindCourseNotFound     ErrorKind = "CourseNotFound"
	KindCourseNotBuilding  ErrorKind = "CourseNotBuilding"
	KindInvalidOrderStart  ErrorKind = "InvalidOrderStart"
	KindOrderGap           ErrorKind = "OrderGapError"

	KindOptionEqualsStatement ErrorKind = "OptionEqualsStatement"
	KindDuplicateOptionText   ErrorKind = "DuplicateOptionText"
	KindInvalidOptionSet      ErrorKind = "InvalidOptionSet"

	KindInvalidStatusTransition ErrorKind = "InvalidStatusTransition"
	KindNoTasks                 ErrorKind = "NoTasks"
	KindOrderMustStartAtOne     ErrorKind = "OrderMustStartAtOne"
	KindOrderGapDetected        ErrorKind = "OrderGapDetected"
	KindMissingTaskType         ErrorKind = "MissingTaskType"

	KindUserNotFound    ErrorKind = "UserNotFound"
	KindNotAnInstructor ErrorKind = "NotAnInstructor"
	KindDuplicateEmail  ErrorKind = "DuplicateEmail"
	KindInvalidUser     ErrorKind = "InvalidUser"
	KindInvalidCourse   ErrorKind = "InvalidCourse"
)

// OptionSetReason refines KindInvalidOptionSet.
type OptionSetReason string

const (
	ReasonCountOutOfRange   OptionSetReason = "count-out-of-range"
	ReasonWrongCorrectCount OptionSetReason = "wrong-correct-count"
	ReasonNoIncorrectOption OptionSetReason = "no-incorrect-option"
)

// ValidationError reports input that breaks a rule. It is never retryable and
// the persisted state is unchanged when it is returned.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string

	Reason   OptionSetReason // only for KindInvalidOptionSet
	Order    int             // expected next order, or first missing order
	TaskType course.TaskType // only for KindMissingTaskType
}

func (e *ValidationError) Error() string {
	return e.Field + "|" + e.Message
}

// NotFoundError reports a referenced course or user that does not exist.
type NotFoundError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Field + "|" + e.Message
}

// AuthorizationError reports a user lacking the capability an operation needs.
type AuthorizationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Field + "|" + e.Message
}

// KindOf returns the ErrorKind carried by err, or "" for infrastructure errors.
func KindOf(err error) ErrorKind {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Kind
	}
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr.Kind
	}
	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}
