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

package errors

import "fmt"

// StatusCode is the kind of an error. The values match the gRPC/Connect codes
// so a transport layer can pass them through unchanged.
type StatusCode int

const (
	// ErrCodeInvalidArgument means the input is malformed.
	ErrCodeInvalidArgument StatusCode = 3

	// ErrCodeNotFound means a requested entity does not exist.
	ErrCodeNotFound StatusCode = 5

	// ErrCodeAlreadyExists means a create collided with an existing entity.
	ErrCodeAlreadyExists StatusCode = 6

	// ErrCodePermissionDenied means the actor's role does not allow the action.
	ErrCodePermissionDenied StatusCode = 7

	// ErrCodeFailedPrecondition means the entity's status forbids the action.
	ErrCodeFailedPrecondition StatusCode = 9

	// ErrCodeInternal means an invariant of the system or the store broke.
	ErrCodeInternal StatusCode = 13
)

// String returns the string representation of the status.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeAlreadyExists:
		return "already_exists"
	case ErrCodePermissionDenied:
		return "permission_denied"
	case ErrCodeFailedPrecondition:
		return "failed_precondition"
	case ErrCodeInternal:
		return "internal"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}

// IsClientError returns true if the status is caused by the caller.
func (c StatusCode) IsClientError() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeNotFound, ErrCodeAlreadyExists,
		ErrCodePermissionDenied, ErrCodeFailedPrecondition:
		return true
	default:
		return false
	}
}

// IsServerError returns true if the status is caused by the server.
func (c StatusCode) IsServerError() bool {
	return c == ErrCodeInternal
}
