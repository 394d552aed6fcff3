package weberr

import (
	"net/http"
)

// Messages written as the JSON string body of failed requests.
const (
	MsgServerError     = "Server error"
	MsgNotAuthorized   = "Not authorized"
	MsgBadRequest      = "Bad request"
	MsgNotFound        = "Not found"
	MsgTooManyRequests = "Too many requests"
)

type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// NewError marks err as a client facing failure answered with msg as a JSON
// string and the given status.
func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(msg, status))

	return Wrap(e, opts...)
}

func NotFound(err error, msg string, opts ...Opt) error {
	return NewError(err, msg, http.StatusNotFound, opts...)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(err, MsgNotAuthorized, http.StatusForbidden, opts...)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(err, MsgServerError, http.StatusInternalServerError, opts...)
}

func BadRequest(err error, msg string, opts ...Opt) error {
	return NewError(err, msg, http.StatusBadRequest, opts...)
}

func TooManyRequests(err error, opts ...Opt) error {
	return NewError(err, MsgTooManyRequests, http.StatusTooManyRequests, opts...)
}
