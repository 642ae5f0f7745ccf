// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrReceiverDisconnected is returned when a message is sent to a mailbox that
	// has been closed, or when the actor went away before producing a response.
	ErrReceiverDisconnected = errors.New("receiver disconnected")

	// ErrInvalidCapacity is returned when a mailbox capacity is less than or equal to zero.
	ErrInvalidCapacity = errors.New("invalid mailbox capacity, must be greater than zero")

	// ErrContextConsumed is returned when the run loop of a context is started more than once.
	ErrContextConsumed = errors.New("context has already been run")

	// ErrInitFailure is returned when the actor's Started hook keeps failing.
	ErrInitFailure = errors.New("actor start failed")

	// ErrInvalidServiceName is returned when a service reports an empty or malformed name.
	ErrInvalidServiceName = errors.New("invalid service name")

	// ErrSchedulerStopped is returned when work is submitted to a scheduler that is not running.
	ErrSchedulerStopped = errors.New("scheduler is not running")

	// ErrInvalidTimeout is returned when a timeout value is less than or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate a startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrInvalidServiceName formats an ErrInvalidServiceName with the given name.
func NewErrInvalidServiceName(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrInvalidServiceName)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
