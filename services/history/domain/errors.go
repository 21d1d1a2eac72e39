package domain

import "errors"

// ErrInvalidHistory indicates a change event cannot be recorded.
var ErrInvalidHistory = errors.New("invalid contract history")
