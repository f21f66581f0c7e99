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

package database

import (
	"time"

	"github.com/yorkie-team/orgkeeper/api/types"
)

// InvitationInfo is a struct for invitation information. An invitation
// references its organization and users by ID only.
type InvitationInfo struct {
	// ID is the unique ID of the invitation.
	ID types.ID `bson:"_id"`

	// OrganizationID is the ID of the organization the user is invited to.
	OrganizationID types.ID `bson:"organization_id"`

	// InvitedUserID is the ID of the invited user.
	InvitedUserID types.ID `bson:"invited_user_id"`

	// InvitedByUserID is the ID of the owner who sent the invitation.
	InvitedByUserID types.ID `bson:"invited_by_user_id"`

	// AssignedRole is the role granted on acceptance. It is never owner.
	AssignedRole MemberRole `bson:"assigned_role"`

	// Status is the stored status of the invitation.
	Status types.InvitationStatus `bson:"status"`

	// CreatedAt is the time when the invitation was created.
	CreatedAt time.Time `bson:"created_at"`

	// ExpiredAt is the deadline for answering the invitation.
	ExpiredAt time.Time `bson:"expired_at"`

	// UpdatedAt is the time when the status last changed.
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewInvitationInfo creates a new PENDING InvitationInfo that expires ttl
// after now.
func NewInvitationInfo(
	orgID types.ID,
	invitedUserID types.ID,
	invitedByUserID types.ID,
	role MemberRole,
	now time.Time,
	ttl time.Duration,
) (*InvitationInfo, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	return &InvitationInfo{
		OrganizationID:  orgID,
		InvitedUserID:   invitedUserID,
		InvitedByUserID: invitedByUserID,
		AssignedRole:    role,
		Status:          types.InvitationPending,
		CreatedAt:       now,
		ExpiredAt:       now.Add(ttl),
		UpdatedAt:       now,
	}, nil
}

// SetStatus sets the status of the invitation. It does not check the
// current status: callers move only PENDING invitations.
func (i *InvitationInfo) SetStatus(status types.InvitationStatus, now time.Time) {
	i.Status = status
	i.UpdatedAt = now
}

// IsExpired returns true if the deadline is not after now.
func (i *InvitationInfo) IsExpired(now time.Time) bool {
	return !i.ExpiredAt.After(now)
}

// EffectiveStatus returns the status as observed at now: a PENDING
// invitation past its deadline is EXPIRED even before housekeeping stores
// that.
func (i *InvitationInfo) EffectiveStatus(now time.Time) types.InvitationStatus {
	if i.Status == types.InvitationPending && !now.IsZero() && i.IsExpired(now) {
		return types.InvitationExpired
	}
	return i.Status
}

// DeepCopy returns a deep copy of the InvitationInfo.
func (i *InvitationInfo) DeepCopy() *InvitationInfo {
	if i == nil {
		return nil
	}

	return &InvitationInfo{
		ID:              i.ID,
		OrganizationID:  i.OrganizationID,
		InvitedUserID:   i.InvitedUserID,
		InvitedByUserID: i.InvitedByUserID,
		AssignedRole:    i.AssignedRole,
		Status:          i.Status,
		CreatedAt:       i.CreatedAt,
		ExpiredAt:       i.ExpiredAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// ToInvitation converts the InvitationInfo to an Invitation carrying the
// status effective at now.
func (i *InvitationInfo) ToInvitation(now time.Time) *types.Invitation {
	return &types.Invitation{
		ID:              i.ID,
		OrganizationID:  i.OrganizationID,
		InvitedUserID:   i.InvitedUserID,
		InvitedByUserID: i.InvitedByUserID,
		AssignedRole:    i.AssignedRole.String(),
		Status:          i.EffectiveStatus(now),
		CreatedAt:       i.CreatedAt,
		ExpiredAt:       i.ExpiredAt,
	}
}
