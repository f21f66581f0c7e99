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

// Package organizations provides the organization related business logic.
package organizations

import (
	"context"
	"fmt"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/users"
)

// ErrCannotDeleteOrganization is returned when the organization still has
// members other than the actor.
var ErrCannotDeleteOrganization = errors.FailedPrecond(
	"cannot delete organization with other members",
).WithCode("ErrCannotDeleteOrganization")

// CreateInput is the input of Create.
type CreateInput struct {
	ActorID types.ID
	Name    string
}

// Create creates an organization with the actor as its owner.
func Create(ctx context.Context, tx database.Transaction, in CreateInput) (*types.Organization, error) {
	fields := &types.OrganizationFields{Name: &in.Name}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if _, err := users.FindActive(ctx, tx, in.ActorID); err != nil {
		return nil, err
	}

	info, err := tx.CreateOrganizationInfo(ctx, database.NewOrganizationInfo(in.Name, in.ActorID, tx.Now()))
	if err != nil {
		return nil, err
	}

	owner, err := database.NewMemberInfo(info.ID, in.ActorID, in.ActorID, database.Owner, tx.Now())
	if err != nil {
		return nil, err
	}
	if _, err := tx.CreateMemberInfo(ctx, owner); err != nil {
		return nil, fmt.Errorf("add owner: %w", err)
	}

	return info.ToOrganization(), nil
}

// CreateTx runs Create and records ORG_CREATED in one transaction.
func CreateTx(ctx context.Context, be *backend.Backend, in CreateInput) (*types.Organization, error) {
	return audit.Execute(ctx, be, "organizations.Create", audit.With(
		Create,
		func(in CreateInput, out *types.Organization) *database.AuditEventInfo {
			return database.NewAuditEventInfo(in.ActorID, out.ID, types.AuditOrgCreated)
		},
	), in)
}

// RenameInput is the input of Rename.
type RenameInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	Name           string
}

// Rename renames the organization. Owners and admins may rename.
func Rename(ctx context.Context, tx database.Transaction, in RenameInput) (*types.Organization, error) {
	fields := &types.OrganizationFields{Name: &in.Name}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageOrganization(actor.Role); err != nil {
		return nil, err
	}

	info, err := database.Require(database.ErrOrganizationNotFound, func() (*database.OrganizationInfo, error) {
		return tx.UpdateOrganizationName(ctx, in.OrganizationID, in.Name)
	})
	if err != nil {
		return nil, err
	}

	return info.ToOrganization(), nil
}

// RenameTx runs Rename and records ORG_RENAMED in one transaction.
func RenameTx(ctx context.Context, be *backend.Backend, in RenameInput) (*types.Organization, error) {
	return audit.Execute(ctx, be, "organizations.Rename", audit.With(
		Rename,
		func(in RenameInput, _ *types.Organization) *database.AuditEventInfo {
			return database.NewAuditEventInfo(in.ActorID, in.OrganizationID, types.AuditOrgRenamed)
		},
	), in)
}

// DeleteInput is the input of Delete.
type DeleteInput struct {
	ActorID        types.ID
	OrganizationID types.ID
}

// Delete deletes the organization. Only a sole owner may delete it; its
// tasks and invitations go with it while its audit trail stays.
func Delete(ctx context.Context, tx database.Transaction, in DeleteInput) (*types.Organization, error) {
	if _, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID); err != nil {
		return nil, err
	}

	members, err := tx.ListMemberInfos(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if len(members) > 1 {
		return nil, fmt.Errorf("%d members: %w", len(members), ErrCannotDeleteOrganization)
	}
	if err := authz.CheckRole(members[0].Role, database.Owner); err != nil {
		return nil, err
	}

	info, err := database.Require(database.ErrOrganizationNotFound, func() (*database.OrganizationInfo, error) {
		return tx.DeleteOrganizationInfo(ctx, in.OrganizationID)
	})
	if err != nil {
		return nil, err
	}

	return info.ToOrganization(), nil
}

// DeleteTx runs Delete and records ORG_DELETED in one transaction.
func DeleteTx(ctx context.Context, be *backend.Backend, in DeleteInput) (*types.Organization, error) {
	return audit.Execute(ctx, be, "organizations.Delete", audit.With(
		Delete,
		func(in DeleteInput, _ *types.Organization) *database.AuditEventInfo {
			return database.NewAuditEventInfo(in.ActorID, in.OrganizationID, types.AuditOrgDeleted)
		},
	), in)
}

// GetInput is the input of Get.
type GetInput struct {
	ActorID        types.ID
	OrganizationID types.ID
}

// Get returns the organization. The actor must be a member.
func Get(ctx context.Context, tx database.Transaction, in GetInput) (*types.Organization, error) {
	if _, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID); err != nil {
		return nil, err
	}

	info, err := database.Require(database.ErrOrganizationNotFound, func() (*database.OrganizationInfo, error) {
		return tx.FindOrganizationInfoByID(ctx, in.OrganizationID)
	})
	if err != nil {
		return nil, err
	}

	return info.ToOrganization(), nil
}

// GetTx runs Get in its own transaction.
func GetTx(ctx context.Context, be *backend.Backend, in GetInput) (*types.Organization, error) {
	return audit.Execute(ctx, be, "organizations.Get", Get, in)
}

// ListByUser returns the organizations the user belongs to.
func ListByUser(ctx context.Context, tx database.Transaction, userID types.ID) ([]*types.Organization, error) {
	infos, err := tx.ListOrganizationInfosByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	orgs := make([]*types.Organization, 0, len(infos))
	for _, info := range infos {
		orgs = append(orgs, info.ToOrganization())
	}
	return orgs, nil
}

// ListByUserTx runs ListByUser in its own transaction.
func ListByUserTx(ctx context.Context, be *backend.Backend, userID types.ID) ([]*types.Organization, error) {
	return audit.Execute(ctx, be, "organizations.ListByUser", ListByUser, userID)
}
