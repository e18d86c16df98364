package branch

import "errors"

var (
	ErrBranchNotFound     = errors.New("branch not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to branch")
)
