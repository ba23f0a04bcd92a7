package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse = errors.New("handler returned nil response")
	ErrNilRecord   = errors.New("validated record missing from context")
)

// HTTPError is an error with an HTTP status code and a stable key that
// clients can match on.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrInvalidJSON           = HTTPError{Code: http.StatusBadRequest, Key: "invalid_json"}
	ErrNotObject             = HTTPError{Code: http.StatusBadRequest, Key: "body_not_object"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrSchemaNotFound        = HTTPError{Code: http.StatusNotFound, Key: "schema_not_found"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable    = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
	ErrGatewayTimeout        = HTTPError{Code: http.StatusGatewayTimeout, Key: "gateway_timeout"}
)
