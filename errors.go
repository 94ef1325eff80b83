package tern

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotStarted is returned by FinishAndNotify when the reader was never
// started: no callback has been registered, so there is nothing to notify.
var ErrNotStarted = errors.New("tern: reader not started")

// statusErr converts a final call status into the error delivered to the
// result callback. An OK status is not an error.
func statusErr(st *status.Status) error {
	if st == nil || st.Code() == codes.OK {
		return nil
	}
	return st.Err()
}
