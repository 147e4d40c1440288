// errors/project_errors.go
package errors

import "errors"

var (
	ErrProjectNotFound           = errors.New("project not found")
	ErrProjectConflict           = errors.New("project code already taken")
	ErrInvalidProjectCode        = errors.New("invalid project code")
	ErrInvalidProjectName        = errors.New("invalid project name")
	ErrIconTooLarge              = errors.New("icon exceeds the size limit")
	ErrDuplicateResourceRequest  = errors.New("active resource request already exists")
	ErrResourceRequestNotFound   = errors.New("resource request not found")
	ErrUnknownResourceRequestFor = errors.New("unknown requested resource")
)
