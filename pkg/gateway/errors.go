package gateway

import "errors"

var (
	// ErrStatus means the service answered with a non-2xx status.
	ErrStatus = errors.New("unexpected response status")
	// ErrDecode means the response body was not the expected JSON.
	ErrDecode = errors.New("malformed response payload")
	// ErrStreamClosed means Next was called on a finished stream.
	ErrStreamClosed = errors.New("stream already closed")
)
