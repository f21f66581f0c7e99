/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errors provides status-carrying errors shared by the use cases and
// the stores. Every domain error is a sentinel built from one of the kind
// constructors below, so callers can branch on the kind without knowing the
// concrete error.
package errors

import (
	"errors"
)

// StatusError is an error that carries a status and an optional code naming
// the concrete error, e.g. "ErrTaskNotFound".
type StatusError interface {
	error
	Status() StatusCode
	Code() string
	WithCode(code string) StatusError
}

type errorWithStatus struct {
	err    error
	status StatusCode
	code   string
}

// Error returns the error message.
func (e errorWithStatus) Error() string {
	return e.err.Error()
}

// Status returns the error status.
func (e errorWithStatus) Status() StatusCode {
	return e.status
}

// Code returns the code of the concrete error.
func (e errorWithStatus) Code() string {
	return e.code
}

// Unwrap returns the underlying error.
func (e errorWithStatus) Unwrap() error {
	return e.err
}

// WithCode returns a copy of the error labelled with the given code.
func (e errorWithStatus) WithCode(code string) StatusError {
	return errorWithStatus{
		err:    e.err,
		status: e.status,
		code:   code,
	}
}

func newStatusError(message string, status StatusCode) StatusError {
	return errorWithStatus{
		err:    errors.New(message),
		status: status,
	}
}

// NotFound creates an error for an entity that does not exist: an actor or
// target that is not a member, a missing task, invitation or organization.
func NotFound(message string) StatusError {
	return newStatusError(message, ErrCodeNotFound)
}

// InvalidArgument creates an error for input that is wrong regardless of the
// state of the system.
func InvalidArgument(message string) StatusError {
	return newStatusError(message, ErrCodeInvalidArgument)
}

// AlreadyExists creates an error for a write that collides with an existing
// row, usually surfaced from a uniqueness constraint.
func AlreadyExists(message string) StatusError {
	return newStatusError(message, ErrCodeAlreadyExists)
}

// PermissionDenied creates an authorization error.
func PermissionDenied(message string) StatusError {
	return newStatusError(message, ErrCodePermissionDenied)
}

// FailedPrecond creates a state-conflict error: the entity is in a status
// that forbids the requested transition.
func FailedPrecond(message string) StatusError {
	return newStatusError(message, ErrCodeFailedPrecondition)
}

// Internal creates an error for unexpected failures, such as unmapped
// persistence errors.
func Internal(message string) StatusError {
	return newStatusError(message, ErrCodeInternal)
}

// StatusOf returns the status of the first StatusError in err's chain, or 0
// when there is none.
func StatusOf(err error) StatusCode {
	if err == nil {
		return 0
	}

	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status()
	}

	return 0
}

// CodeOf returns the code of the first StatusError in err's chain.
func CodeOf(err error) string {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code()
	}

	return ""
}

// IsStatus reports whether err carries the given status.
func IsStatus(err error, status StatusCode) bool {
	return StatusOf(err) == status
}

// IsNotFound reports whether err carries the not-found status.
func IsNotFound(err error) bool {
	return IsStatus(err, ErrCodeNotFound)
}

// IsClientError reports whether err is caused by the caller.
func IsClientError(err error) bool {
	return StatusOf(err).IsClientError()
}

// Is is a shortcut of errors.Is so that importers do not need both packages.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a shortcut of errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
