// errors/user_errors.go
package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotActive      = errors.New("user is not active")
	ErrSelfRoleChange     = errors.New("users cannot change their own role")
	ErrInvalidProjectRole = errors.New("invalid project role")
	ErrUsernameMismatch   = errors.New("token username does not match the request")
	ErrItemNotFound       = errors.New("item not found")
	ErrTemplateNotFound   = errors.New("attribute template not found")
)
