package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrActorMissing           = errors.New("token carries no username")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
