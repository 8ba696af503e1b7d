package scheduler

import "errors"

var (
	ErrUnknownJob  = errors.New("unknown scheduler job")
	ErrLogNotFound = errors.New("scheduler log not found")
)
