package setting

import "errors"

var (
	// ErrSettingNotFound means a required setting row is missing. This is a
	// configuration error and is surfaced as an internal failure, never
	// silently defaulted.
	ErrSettingNotFound = errors.New("general setting not found")
)
