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

package types

import (
	"fmt"

	"github.com/yorkie-team/orgkeeper/pkg/errors"
)

// Below are the errors returned when an enumerated value is unknown.
var (
	// ErrInvalidUserStatus is returned when the user status is unknown.
	ErrInvalidUserStatus = errors.InvalidArgument("invalid user status").WithCode("ErrInvalidUserStatus")

	// ErrInvalidTaskStatus is returned when the task status is unknown.
	ErrInvalidTaskStatus = errors.InvalidArgument("invalid task status").WithCode("ErrInvalidTaskStatus")

	// ErrInvalidInvitationStatus is returned when the invitation status is unknown.
	ErrInvalidInvitationStatus = errors.InvalidArgument(
		"invalid invitation status",
	).WithCode("ErrInvalidInvitationStatus")

	// ErrInvalidAuditAction is returned when the audit action is unknown.
	ErrInvalidAuditAction = errors.InvalidArgument("invalid audit action").WithCode("ErrInvalidAuditAction")

	// ErrEmptyFields is returned when an update carries no field at all.
	ErrEmptyFields = errors.InvalidArgument("no fields to update").WithCode("ErrEmptyFields")

	// ErrInvalidFields is returned when a field violates its validation rules.
	ErrInvalidFields = errors.InvalidArgument("invalid fields").WithCode("ErrInvalidFields")
)

// invalidFields marks a validation failure with the invalid-argument status
// while keeping the violations reachable through errors.As.
func invalidFields(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidFields, err)
}
