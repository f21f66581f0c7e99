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

// Package authz decides whether an organization member may perform an
// action. The decisions are pure functions of roles and IDs.
package authz

import (
	"fmt"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

var (
	// ErrInsufficientPermissions is returned when the actor's role does not
	// allow the action.
	ErrInsufficientPermissions = errors.PermissionDenied(
		"insufficient permissions",
	).WithCode("ErrInsufficientPermissions")

	// ErrCannotActOnSelf is returned when the actor targets their own
	// membership.
	ErrCannotActOnSelf = errors.PermissionDenied("cannot act on self").WithCode("ErrCannotActOnSelf")

	// ErrCannotAssignRole is returned when the owner role is requested.
	ErrCannotAssignRole = errors.PermissionDenied("cannot assign the owner role").WithCode("ErrCannotAssignRole")

	// ErrOnlyOwnerCanAssignRole is returned when an admin assigns the admin
	// role.
	ErrOnlyOwnerCanAssignRole = errors.PermissionDenied(
		"only the owner can assign this role",
	).WithCode("ErrOnlyOwnerCanAssignRole")
)

// CheckRole returns an error if role is below required.
func CheckRole(role, required database.MemberRole) error {
	if !role.IsAtLeast(required) {
		return fmt.Errorf(
			"member has '%s' but '%s' required: %w",
			role,
			required,
			ErrInsufficientPermissions,
		)
	}

	return nil
}

// CanChangeRole decides whether actor may change the role of target.
// Acting on oneself is refused regardless of roles.
func CanChangeRole(actor, target database.MemberRole, isSelf bool) error {
	if isSelf {
		return ErrCannotActOnSelf
	}

	if actor != database.Owner && actor != database.Admin {
		return fmt.Errorf("'%s' cannot change roles: %w", actor, ErrInsufficientPermissions)
	}
	if !actor.IsHigherThan(target) {
		return fmt.Errorf("'%s' cannot change the role of '%s': %w", actor, target, ErrInsufficientPermissions)
	}

	return nil
}

// CanAssignRoleOnHire decides whether actor may give requested to a new
// member. The owner role is never assignable.
func CanAssignRoleOnHire(actor, requested database.MemberRole) error {
	if requested == database.Owner {
		return ErrCannotAssignRole
	}

	switch actor {
	case database.Owner:
		return nil
	case database.Admin:
		if requested == database.Member {
			return nil
		}
		return fmt.Errorf("'%s' cannot assign '%s': %w", actor, requested, ErrOnlyOwnerCanAssignRole)
	}

	return fmt.Errorf("'%s' cannot assign roles: %w", actor, ErrInsufficientPermissions)
}

// CanFire decides whether actor may remove a member.
func CanFire(actor database.MemberRole) error {
	if actor != database.Owner {
		return fmt.Errorf("'%s' cannot remove members: %w", actor, ErrInsufficientPermissions)
	}

	return nil
}

// CanInvite decides whether actor may invite users.
func CanInvite(actor database.MemberRole) error {
	return CheckRole(actor, database.Owner)
}

// CanManageOrganization decides whether actor may rename the organization.
func CanManageOrganization(actor database.MemberRole) error {
	return CheckRole(actor, database.Admin)
}

// CanViewAudit decides whether actor may read the audit trail.
func CanViewAudit(actor database.MemberRole) error {
	return CheckRole(actor, database.Admin)
}

// TaskAccess describes an attempt to mutate a task.
type TaskAccess struct {
	ActorID      types.ID
	ActorRole    database.MemberRole
	CreatorID    types.ID
	AssigneeID   types.ID
	AssigneeRole database.MemberRole
}

// TaskPermissionPolicy decides task mutations. Owners and admins are
// checked against the assignee's role. Members are checked against the
// creator.
type TaskPermissionPolicy struct{}

// CanMutate returns an error if the access is not allowed.
func (TaskPermissionPolicy) CanMutate(access TaskAccess) error {
	switch access.ActorRole {
	case database.Owner, database.Admin:
		if access.AssigneeID != access.ActorID && access.AssigneeRole.IsAtLeast(access.ActorRole) {
			return fmt.Errorf(
				"'%s' cannot change a task assigned to '%s': %w",
				access.ActorRole,
				access.AssigneeRole,
				ErrInsufficientPermissions,
			)
		}
		return nil
	case database.Member:
		if access.ActorID != access.CreatorID {
			return fmt.Errorf("member can only change own tasks: %w", ErrInsufficientPermissions)
		}
		return nil
	}

	return fmt.Errorf("'%s': %w", access.ActorRole, ErrInsufficientPermissions)
}
