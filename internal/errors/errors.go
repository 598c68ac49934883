// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrAnnouncementNotFound is a sentinel error
type ErrAnnouncementNotFound struct {
	AnnouncementID int
}

func (e *ErrAnnouncementNotFound) Error() string {
	return fmt.Sprintf("announcement with ID %d not found", e.AnnouncementID)
}

// Helper constructor
func NewAnnouncementNotFound(id int) error {
	return &ErrAnnouncementNotFound{AnnouncementID: id}
}

func IsNotFound(err error) bool {
	var nf *ErrAnnouncementNotFound
	return errors.As(err, &nf)
}

// ValidationError covers bad request fields, an empty resolved recipient set
// and an empty retryable set. It is always reported before any send starts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError means the membership store could not be reached while
// resolving recipients. The whole send aborts before any ledger mutation.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream fetch failed during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// AuthError covers a missing/invalid token or a non-admin principal.
type AuthError struct {
	Msg       string
	Forbidden bool // valid token but not an admin
}

func (e *AuthError) Error() string { return e.Msg }

func NewUnauthorized(msg string) error {
	return &AuthError{Msg: msg}
}

func NewForbidden(msg string) error {
	return &AuthError{Msg: msg, Forbidden: true}
}

// ErrDispatchInProgress rejects a second concurrent dispatch pass for the
// same announcement id.
type ErrDispatchInProgress struct {
	AnnouncementID int
}

func (e *ErrDispatchInProgress) Error() string {
	return fmt.Sprintf("dispatch already in progress for announcement %d", e.AnnouncementID)
}

func NewDispatchInProgress(id int) error {
	return &ErrDispatchInProgress{AnnouncementID: id}
}

func IsDispatchInProgress(err error) bool {
	var d *ErrDispatchInProgress
	return errors.As(err, &d)
}
