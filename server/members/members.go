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

// Package members provides business logic for managing organization
// members.
package members

import (
	"context"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/users"
)

// ErrCannotPerformActionOnYourself is returned when the actor targets
// themselves.
var ErrCannotPerformActionOnYourself = errors.PermissionDenied(
	"cannot perform action on yourself",
).WithCode("ErrCannotPerformActionOnYourself")

// HireInput is the input of Hire.
type HireInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	TargetID       types.ID

	// Role is the role of the new member. It defaults to member.
	Role database.MemberRole
}

// Hire adds the target user to the organization.
func Hire(ctx context.Context, tx database.Transaction, in HireInput) (*types.Member, error) {
	if in.ActorID == in.TargetID {
		return nil, ErrCannotPerformActionOnYourself
	}

	role := in.Role
	if role == "" {
		role = database.Member
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if _, err := users.FindActive(ctx, tx, in.TargetID); err != nil {
		return nil, err
	}
	if err := authz.CanAssignRoleOnHire(actor.Role, role); err != nil {
		return nil, err
	}

	info, err := database.NewMemberInfo(in.OrganizationID, in.TargetID, in.ActorID, role, tx.Now())
	if err != nil {
		return nil, err
	}
	info, err = tx.CreateMemberInfo(ctx, info)
	if err != nil {
		return nil, err
	}

	return info.ToMember(), nil
}

// HireTx runs Hire and records ORG_MEMBER_HIRED in one transaction.
func HireTx(ctx context.Context, be *backend.Backend, in HireInput) (*types.Member, error) {
	return audit.Execute(ctx, be, "members.Hire", audit.With(Hire, func(in HireInput, _ *types.Member) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, in.OrganizationID, types.AuditOrgMemberHired)
	}), in)
}

// ChangeRoleInput is the input of ChangeRole.
type ChangeRoleInput struct {
	ActorID        types.ID
	TargetID       types.ID
	OrganizationID types.ID
	NewRole        database.MemberRole
}

// ChangeRole changes the role of the target member. The actor must outrank
// both the target's current role and the new one.
func ChangeRole(ctx context.Context, tx database.Transaction, in ChangeRoleInput) (*types.Member, error) {
	if in.ActorID == in.TargetID {
		return nil, ErrCannotPerformActionOnYourself
	}
	if err := in.NewRole.Validate(); err != nil {
		return nil, err
	}

	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	target, err := authz.FindTarget(ctx, tx, in.OrganizationID, in.TargetID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanChangeRole(actor.Role, target.Role, actor.UserID == target.UserID); err != nil {
		return nil, err
	}
	if err := authz.CanAssignRoleOnHire(actor.Role, in.NewRole); err != nil {
		return nil, err
	}

	info, err := tx.UpdateMemberRole(ctx, in.OrganizationID, in.TargetID, in.NewRole)
	if err != nil {
		return nil, err
	}

	return info.ToMember(), nil
}

// ChangeRoleTx runs ChangeRole and records ORG_MEMBER_ROLE_CHANGED in one
// transaction.
func ChangeRoleTx(ctx context.Context, be *backend.Backend, in ChangeRoleInput) (*types.Member, error) {
	return audit.Execute(ctx, be, "members.ChangeRole", audit.With(
		ChangeRole,
		func(in ChangeRoleInput, _ *types.Member) *database.AuditEventInfo {
			return database.NewAuditEventInfo(in.ActorID, in.OrganizationID, types.AuditOrgMemberRoleChanged)
		},
	), in)
}

// FireInput is the input of Fire.
type FireInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	TargetID       types.ID
}

// Fire removes the target member from the organization and returns the
// removed membership.
func Fire(ctx context.Context, tx database.Transaction, in FireInput) (*types.Member, error) {
	if in.ActorID == in.TargetID {
		return nil, ErrCannotPerformActionOnYourself
	}

	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if _, err := authz.FindTarget(ctx, tx, in.OrganizationID, in.TargetID); err != nil {
		return nil, err
	}
	if err := authz.CanFire(actor.Role); err != nil {
		return nil, err
	}

	info, err := database.Require(authz.ErrTargetNotAMember, func() (*database.MemberInfo, error) {
		return tx.DeleteMemberInfo(ctx, in.OrganizationID, in.TargetID)
	})
	if err != nil {
		return nil, err
	}

	return info.ToMember(), nil
}

// FireTx runs Fire and records ORG_MEMBER_FIRED in one transaction.
func FireTx(ctx context.Context, be *backend.Backend, in FireInput) (*types.Member, error) {
	return audit.Execute(ctx, be, "members.Fire", audit.With(Fire, func(in FireInput, _ *types.Member) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, in.OrganizationID, types.AuditOrgMemberFired)
	}), in)
}

// ListInput is the input of List.
type ListInput struct {
	ActorID        types.ID
	OrganizationID types.ID
}

// List returns the members of the organization. The actor must be one of
// them.
func List(ctx context.Context, tx database.Transaction, in ListInput) ([]*types.Member, error) {
	if _, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID); err != nil {
		return nil, err
	}

	infos, err := tx.ListMemberInfos(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	members := make([]*types.Member, 0, len(infos))
	for _, info := range infos {
		members = append(members, info.ToMember())
	}
	return members, nil
}

// ListTx runs List in its own transaction.
func ListTx(ctx context.Context, be *backend.Backend, in ListInput) ([]*types.Member, error) {
	return audit.Execute(ctx, be, "members.List", List, in)
}
