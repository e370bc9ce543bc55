// Package verrors collects the sentinel errors shared by every replication
// component and the glue to carry them across a gRPC hop without losing
// their identity.
package verrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogo/status"
	"google.golang.org/grpc/codes"
)

var (
	ErrInvalid  = errors.New("replication: invalid argument")
	ErrExist    = errors.New("replication: already exists")
	ErrStopped  = errors.New("replication: stopped")
	ErrClosed   = errors.New("replication: closed")
	ErrNotFound = errors.New("replication: not found")
)

var errorRegistry = make(map[string]error)

func init() {
	initErrorRegistry(ErrInvalid, ErrExist, ErrStopped, ErrClosed, ErrNotFound)
}

func initErrorRegistry(errs ...error) {
	for _, err := range errs {
		key := err.Error()
		if _, ok := errorRegistry[key]; ok {
			panic(fmt.Sprintf("verrors: duplicate sentinel in registry: %s", key))
		}
		errorRegistry[key] = err
	}
}

// Phase names the stage of a per-peer iteration in which a failure
// occurred, matching the state machine in spec.md §4.8.
type Phase string

const (
	PhaseCheckOut  Phase = "checkout"
	PhaseExchange  Phase = "exchange"
	PhaseReconcile Phase = "reconcile"
	PhaseFetch     Phase = "fetch"
	PhaseWrite     Phase = "write"
)

func (p Phase) String() string {
	return string(p)
}

// ReplicationError scopes a failure to one peer iteration and phase, so the
// worker loop can count it, log it, and move on without stalling other
// peers (spec.md §7). It is never used for a per-slot error; those travel
// inside ExchangeMetadataResult instead.
type ReplicationError struct {
	Phase Phase
	Peer  string
	Err   error
}

func (e *ReplicationError) Error() string {
	return fmt.Sprintf("replication: phase=%s peer=%s: %v", e.Phase, e.Peer, e.Err)
}

func (e *ReplicationError) Unwrap() error { return e.Err }

func NewReplicationError(phase Phase, peer string, err error) error {
	if err == nil {
		return nil
	}
	return &ReplicationError{Phase: phase, Peer: peer, Err: err}
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (e *transientError) Is(target error) bool {
	if target == nil {
		return e == nil
	}
	if _, ok := target.(*transientError); ok {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

func WrapTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err represents a condition expected to clear
// up on its own, such as a peer that is momentarily unavailable (§7,
// Transport). Protocol errors and invariant violations are never
// transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, &transientError{}) {
		return true
	}
	if st, ok := status.FromError(err); ok {
		return st.Code() == codes.Unavailable
	}
	return false
}

// ToStatusError converts err into a gRPC status error, preserving context
// cancellation/deadline semantics across the wire.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return status.New(codes.Canceled, err.Error()).Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.New(codes.DeadlineExceeded, err.Error()).Err()
	}
	return status.New(codes.Unknown, err.Error()).Err()
}

// FromStatusError reverses ToStatusError: a canceled/expired status becomes
// the matching context error, an Unavailable status is marked transient,
// and a message matching a registered sentinel is resolved back to that
// sentinel so callers can keep using errors.Is.
func FromStatusError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.OK:
		return nil
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}

	if sentinel, ok := errorRegistry[st.Message()]; ok {
		err = sentinel
	} else {
		err = errors.New(st.Message())
	}
	if st.Code() == codes.Unavailable {
		err = WrapTransient(err)
	}
	return err
}
