package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserInactive          = errors.New("user account is inactive")
	ErrHRAccessRequired      = errors.New("HR access required")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrActorWithoutEmployee  = errors.New("user has no linked employee record")
)
