// errors/errors.go
package errors

import "errors"

var (
	ErrValidation       = errors.New("invalid request data")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDownstream       = errors.New("downstream service error")
)
