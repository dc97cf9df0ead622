// Package envelope provides the success/error result type returned by every
// provider-facing operation.
package envelope

import (
	"encoding/json"
	"fmt"

	rmerrors "github.com/lepinkainen/reelmeta/internal/errors"
)

// Response is either a success carrying data or a failure carrying an error
// and a numeric code. The variant is tracked explicitly, so a payload that
// happens to contain fields named "data" or "error" can never be mistaken
// for the other variant.
type Response[T any] struct {
	data T
	err  error
	code int
	ok   bool
}

// Success wraps data. A code of 0 means "not set".
func Success[T any](data T, code int) Response[T] {
	return Response[T]{data: data, code: code, ok: true}
}

// Failure wraps err. A zero code is replaced with the taxonomy default
// (400, 404 or 500).
func Failure[T any](err error, code int) Response[T] {
	if err == nil {
		err = rmerrors.NewTransportError(nil)
	}
	if code == 0 {
		code = rmerrors.DefaultCode(err)
	}
	return Response[T]{err: err, code: code}
}

// Errorf is a failure carrying a status error with a formatted message. A
// zero code becomes 500.
func Errorf[T any](code int, format string, args ...any) Response[T] {
	if code == 0 {
		code = 500
	}
	return Failure[T](rmerrors.NewStatusError(code, fmt.Sprintf(format, args...)), code)
}

// NotFound is a failure carrying a NotFoundError.
func NotFound[T any](format string, args ...any) Response[T] {
	return Failure[T](rmerrors.NewNotFoundError(fmt.Sprintf(format, args...)), 404)
}

// Invalid is a failure carrying a ValidationError for field.
func Invalid[T any](field, message string) Response[T] {
	return Failure[T](rmerrors.NewValidationError(field, message), 400)
}

// Propagate re-types a failure so it can be returned from an operation with
// a different data type. Calling it on a success yields a failure, since the
// data cannot be converted.
func Propagate[T, U any](r Response[U]) Response[T] {
	if r.ok {
		return Errorf[T](500, "propagate called on a successful response")
	}
	return Response[T]{err: r.err, code: r.code}
}

// Map transforms the data of a success and passes failures through.
func Map[T, U any](r Response[T], fn func(T) U) Response[U] {
	if !r.ok {
		return Propagate[U](r)
	}
	return Success(fn(r.data), r.code)
}

// HasError reports whether r is a failure.
func (r Response[T]) HasError() bool { return !r.ok }

// HasData reports whether r is a success.
func (r Response[T]) HasData() bool { return r.ok }

// UnwrapOrNil returns a pointer to the data, or nil for a failure.
func (r Response[T]) UnwrapOrNil() *T {
	if !r.ok {
		return nil
	}
	data := r.data
	return &data
}

// Data returns the data, or the zero value for a failure.
func (r Response[T]) Data() T { return r.data }

// Err returns the failure's error, or nil for a success.
func (r Response[T]) Err() error { return r.err }

// Code returns the numeric code: an HTTP status where one applies.
func (r Response[T]) Code() int { return r.code }

// Message returns the human-readable failure message.
func (r Response[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Kind classifies a failure. Successes report KindUnknown.
func (r Response[T]) Kind() rmerrors.Kind {
	return rmerrors.KindOf(r.err)
}

// HasError reports whether r is a failure.
func HasError[T any](r Response[T]) bool { return r.HasError() }

// HasData reports whether r is a success.
func HasData[T any](r Response[T]) bool { return r.HasData() }

// UnwrapOrNil returns a pointer to r's data, or nil for a failure.
func UnwrapOrNil[T any](r Response[T]) *T { return r.UnwrapOrNil() }

type wireFailure struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type wireSuccess[T any] struct {
	Data T   `json:"data"`
	Code int `json:"code,omitempty"`
}

// MarshalJSON encodes the failure variant as {"error","code"} and the
// success variant as {"data","code"}.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(wireFailure{Error: r.Message(), Code: r.code})
	}
	return json.Marshal(wireSuccess[T]{Data: r.data, Code: r.code})
}
