package user

import "errors"

var (
	ErrInvalidIdentity         = errors.New("invalid identity claims")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCompanyIDRequired       = errors.New("company ID is required")
)
