package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodePersistence  ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeAuthDenied   ErrorCode = "AUTH_DENIED"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// DenyReason уточняет причину отказа в авторизации,
// чтобы интерфейс мог показать корректное сообщение.
type DenyReason string

const (
	DenyReasonExpired      DenyReason = "expired"
	DenyReasonInvalid      DenyReason = "invalid"
	DenyReasonUnauthorized DenyReason = "unauthorized"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Reason     DenyReason
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Denied создаёт ошибку отказа в авторизации с конкретной причиной.
func Denied(reason DenyReason, message string) *AppError {
	e := New(ErrCodeAuthDenied, message)
	e.Reason = reason
	return e
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeAuthDenied:
		return http.StatusForbidden
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

// IsPersistenceWarning сообщает, что операция применена в памяти,
// но запись в хранилище не удалась. Не фатально, состояние не откатывается.
func IsPersistenceWarning(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodePersistence
}

func IsAuthDenied(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeAuthDenied
}

// DeniedReason возвращает причину отказа, если ошибка — AUTH_DENIED.
func DeniedReason(err error) (DenyReason, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeAuthDenied {
		return appErr.Reason, true
	}
	return "", false
}

var (
	ErrItemNotFound = New(ErrCodeNotFound, "элемент галереи не найден")
	ErrUnauthorized = New(ErrCodeUnauthorized, "требуется авторизация")
)
