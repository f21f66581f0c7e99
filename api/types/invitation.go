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
	"time"
)

// InvitationStatus is the status of an invitation.
type InvitationStatus string

const (
	// InvitationPending is the status of an invitation waiting for an answer.
	InvitationPending InvitationStatus = "PENDING"

	// InvitationAccepted is the status of an invitation accepted by the
	// invited user.
	InvitationAccepted InvitationStatus = "ACCEPTED"

	// InvitationRejected is the status of an invitation rejected by the
	// invited user.
	InvitationRejected InvitationStatus = "REJECTED"

	// InvitationCanceled is the status of an invitation withdrawn by an owner.
	InvitationCanceled InvitationStatus = "CANCELED"

	// InvitationExpired is the status of a pending invitation whose deadline
	// has passed.
	InvitationExpired InvitationStatus = "EXPIRED"
)

// ParseInvitationStatus parses the given string into an InvitationStatus.
func ParseInvitationStatus(s string) (InvitationStatus, error) {
	status := InvitationStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate returns an error if the status is not one of the known values.
func (s InvitationStatus) Validate() error {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationRejected, InvitationCanceled, InvitationExpired:
		return nil
	}
	return fmt.Errorf("%q: %w", s, ErrInvalidInvitationStatus)
}

// Invitation is an offer to a user to join an organization.
type Invitation struct {
	// ID is the unique ID of the invitation.
	ID ID `json:"id"`

	// OrganizationID is the ID of the organization the user is invited to.
	OrganizationID ID `json:"organization_id"`

	// InvitedUserID is the ID of the invited user.
	InvitedUserID ID `json:"invited_user_id"`

	// InvitedByUserID is the ID of the owner who sent the invitation.
	InvitedByUserID ID `json:"invited_by_user_id"`

	// AssignedRole is the role the user gets on acceptance.
	AssignedRole string `json:"assigned_role"`

	// Status is the effective status of the invitation at the time it was read.
	Status InvitationStatus `json:"status"`

	// CreatedAt is the time when the invitation was created.
	CreatedAt time.Time `json:"created_at"`

	// ExpiredAt is the deadline for answering the invitation.
	ExpiredAt time.Time `json:"expired_at"`
}
