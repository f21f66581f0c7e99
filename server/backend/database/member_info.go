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
	"fmt"
	"time"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
)

var (
	// ErrInvalidMemberRole is returned when the role is not one of the known
	// roles.
	ErrInvalidMemberRole = errors.InvalidArgument("invalid member role").WithCode("ErrInvalidMemberRole")
)

const (
	// Owner is the owner role of the organization.
	Owner MemberRole = "owner"
	// Admin is the admin role of the organization.
	Admin MemberRole = "admin"
	// Member is the member role of the organization.
	Member MemberRole = "member"
)

// MemberRole represents a role of an organization member. Roles are
// totally ordered: owner > admin > member.
type MemberRole string

// String returns the string representation of the role.
func (r MemberRole) String() string {
	return string(r)
}

// Validate validates the given member role.
func (r MemberRole) Validate() error {
	switch r {
	case Owner, Admin, Member:
		return nil
	default:
		return fmt.Errorf("%q: %w", r, ErrInvalidMemberRole)
	}
}

// Rank returns the position of the role in the hierarchy. Unknown roles
// rank below every known role.
func (r MemberRole) Rank() int {
	switch r {
	case Owner:
		return 2
	case Admin:
		return 1
	case Member:
		return 0
	}
	return -1
}

// IsHigherThan returns true if r is strictly above other.
func (r MemberRole) IsHigherThan(other MemberRole) bool {
	return r.Rank() > other.Rank()
}

// IsAtLeast returns true if r is equal to or above other.
func (r MemberRole) IsAtLeast(other MemberRole) bool {
	return r.Rank() >= other.Rank()
}

// NewMemberRole parses and validates a role string into MemberRole.
func NewMemberRole(role string) (MemberRole, error) {
	r := MemberRole(role)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// MemberInfo is a struct for organization member information. A user has at
// most one MemberInfo per organization.
type MemberInfo struct {
	// ID is the unique ID of the membership row.
	ID types.ID `bson:"_id"`

	// OrganizationID is the ID of the organization.
	OrganizationID types.ID `bson:"organization_id"`

	// UserID is the ID of the user.
	UserID types.ID `bson:"user_id"`

	// Role is the role of the user in the organization.
	Role MemberRole `bson:"role"`

	// InvitedBy is the ID of the user who hired or invited this member.
	InvitedBy types.ID `bson:"invited_by"`

	// JoinedAt is the time when the member joined. It never changes.
	JoinedAt time.Time `bson:"joined_at"`
}

// NewMemberInfo creates a new MemberInfo.
func NewMemberInfo(orgID, userID, invitedBy types.ID, role MemberRole, now time.Time) (*MemberInfo, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	return &MemberInfo{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		InvitedBy:      invitedBy,
		JoinedAt:       now,
	}, nil
}

// DeepCopy returns a deep copy of the MemberInfo.
func (i *MemberInfo) DeepCopy() *MemberInfo {
	if i == nil {
		return nil
	}

	return &MemberInfo{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		UserID:         i.UserID,
		Role:           i.Role,
		InvitedBy:      i.InvitedBy,
		JoinedAt:       i.JoinedAt,
	}
}

// ToMember converts the MemberInfo to a Member.
func (i *MemberInfo) ToMember() *types.Member {
	return &types.Member{
		OrganizationID: i.OrganizationID,
		UserID:         i.UserID,
		Role:           i.Role.String(),
		InvitedBy:      i.InvitedBy,
		JoinedAt:       i.JoinedAt,
	}
}
