package domain

import "errors"

// ErrInvalidNotification indicates an event carries no usable recipient.
var ErrInvalidNotification = errors.New("invalid notification")
