package service

import "errors"

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyVoted       = errors.New("already voted")
	ErrDuplicateReport    = errors.New("already reported")
	ErrNotInvited         = errors.New("user is not invited")
	ErrNotModerator       = errors.New("user is not a moderator")
	ErrUpdateFailed       = errors.New("update failed")
	ErrBanned             = errors.New("user is banned or muted in this community")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
