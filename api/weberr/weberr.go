package weberr

import "errors"

// Opt decorates an error on its way out of a handler.
type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse answers the request with body and status.
func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &decorated{error: err, body: body, status: status, hasResponse: true}
	}
}

// WithFields attaches log fields reported by the Errors middleware.
func WithFields(fields map[string]any) Opt {
	return func(err error) error {
		return &decorated{error: err, fields: fields}
	}
}

// decorated carries either a response or log fields. Stacked decorations
// are found through errors.As walking the Unwrap chain.
type decorated struct {
	error
	body        any
	status      int
	hasResponse bool
	fields      map[string]any
}

func (d *decorated) Unwrap() error { return d.error }

// Response returns the outermost body and status attached to err.
func Response(err error) (body any, status int, ok bool) {
	for {
		var d *decorated
		if !errors.As(err, &d) {
			return nil, 0, false
		}
		if d.hasResponse {
			return d.body, d.status, true
		}
		err = d.error
	}
}

// Fields returns the outermost log fields attached to err.
func Fields(err error) (fields map[string]any, ok bool) {
	for {
		var d *decorated
		if !errors.As(err, &d) {
			return nil, false
		}
		if d.fields != nil {
			return d.fields, true
		}
		err = d.error
	}
}
