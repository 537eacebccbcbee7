// file: internals/helpers/errs/errs.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind mengelompokkan kegagalan service supaya controller bisa
// memetakan ke status HTTP tanpa membaca pesan.
type Kind string

const (
	KindNotFound              Kind = "NOT_FOUND"
	KindConflict              Kind = "CONFLICT"
	KindInvalidTag            Kind = "INVALID_TAG"
	KindNoCandidates          Kind = "NO_CANDIDATES"
	KindInsufficientQuestions Kind = "INSUFFICIENT_QUESTIONS"
	KindTagMismatch           Kind = "TAG_MISMATCH"
	KindValidation            Kind = "VALIDATION_ERROR"
	KindInternal              Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	// Details opsional: angka/daftar yang membantu caller memperbaiki request
	// (mis. found/needed, daftar nama tag kedua sisi).
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func WithDetails(kind Kind, message string, details map[string]any) *Error {
	return &Error{Kind: kind, Message: message, Details: details}
}

// KindOf mengembalikan Kind dari err (KindInternal kalau bukan *Error).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// HTTPStatus memetakan Kind → status HTTP.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindInvalidTag, KindValidation:
		return fiber.StatusBadRequest
	case KindNoCandidates, KindInsufficientQuestions, KindTagMismatch:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
