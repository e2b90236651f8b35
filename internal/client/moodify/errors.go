package moodify

import (
	"errors"
	"fmt"
)

// ErrEmptyReply means the service answered 2xx without any message text.
var ErrEmptyReply = errors.New("reply carries neither response nor message")

// StatusError reports a non-2xx answer.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected HTTP %d", e.Endpoint, e.Code)
}
