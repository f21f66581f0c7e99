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

// Package invitations provides business logic for inviting users into
// organizations. An invitation is answered once: it leaves PENDING for
// ACCEPTED, REJECTED, CANCELED or EXPIRED and never comes back.
package invitations

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/users"
)

// DefaultTTL is the lifetime of an invitation created without one.
const DefaultTTL = 7 * 24 * gotime.Hour

var (
	// ErrInvalidRoleInInvitation is returned when an invitation offers the
	// owner role.
	ErrInvalidRoleInInvitation = errors.InvalidArgument(
		"invitation cannot offer the owner role",
	).WithCode("ErrInvalidRoleInInvitation")

	// ErrInvitationOfDiffUser is returned when a user answers an invitation
	// sent to someone else.
	ErrInvitationOfDiffUser = errors.PermissionDenied(
		"invitation belongs to a different user",
	).WithCode("ErrInvitationOfDiffUser")

	// ErrUserAlreadyMember is returned when the invited user already belongs
	// to the organization.
	ErrUserAlreadyMember = errors.AlreadyExists("user is already a member").WithCode("ErrUserAlreadyMember")

	// ErrInvitationNotPending is returned when the invitation was already
	// answered.
	ErrInvitationNotPending = errors.FailedPrecond("invitation is not pending").WithCode("ErrInvitationNotPending")

	// ErrInvitationExpired is returned when the invitation deadline passed.
	ErrInvitationExpired = errors.FailedPrecond("invitation has expired").WithCode("ErrInvitationExpired")
)

// CreateInput is the input of Create.
type CreateInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	InvitedUserID  types.ID

	// Role is the role granted on acceptance. It defaults to member.
	Role database.MemberRole

	// TTL is how long the invitation stays answerable. It defaults to
	// DefaultTTL.
	TTL gotime.Duration
}

// Create invites a user into the organization. Only owners may invite.
func Create(ctx context.Context, tx database.Transaction, in CreateInput) (*types.Invitation, error) {
	role := in.Role
	if role == "" {
		role = database.Member
	}
	if role == database.Owner {
		return nil, ErrInvalidRoleInInvitation
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	ttl := in.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanInvite(actor.Role); err != nil {
		return nil, err
	}
	if _, err := users.FindActive(ctx, tx, in.InvitedUserID); err != nil {
		return nil, err
	}
	if err := ensureNotMember(ctx, tx, in.OrganizationID, in.InvitedUserID); err != nil {
		return nil, err
	}
	if err := expireStale(ctx, tx, in.OrganizationID, in.InvitedUserID); err != nil {
		return nil, err
	}

	pending, err := tx.HasPendingInvitation(ctx, in.OrganizationID, in.InvitedUserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, database.ErrPendingInvitationExists
	}

	info, err := database.NewInvitationInfo(
		in.OrganizationID,
		in.InvitedUserID,
		in.ActorID,
		role,
		tx.Now(),
		ttl,
	)
	if err != nil {
		return nil, err
	}
	info, err = tx.CreateInvitationInfo(ctx, info)
	if err != nil {
		return nil, err
	}

	return info.ToInvitation(tx.Now()), nil
}

// CreateTx runs Create and records INVITATION_CREATED in one transaction.
// A zero TTL is taken from the backend configuration.
func CreateTx(ctx context.Context, be *backend.Backend, in CreateInput) (*types.Invitation, error) {
	if in.TTL == 0 && be.Config != nil && be.Config.InvitationTTL != "" {
		in.TTL = be.Config.ParseInvitationTTL()
	}

	return audit.Execute(ctx, be, "invitations.Create", audit.With(Create, func(
		in CreateInput,
		out *types.Invitation,
	) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, out.OrganizationID, types.AuditInvitationCreated)
	}), in)
}

// RespondInput is the input of Accept and Reject.
type RespondInput struct {
	ActorID      types.ID
	InvitationID types.ID
}

// Accept accepts the invitation and makes the actor a member with the
// offered role. The status write and the membership are one unit of work.
func Accept(ctx context.Context, tx database.Transaction, in RespondInput) (*types.Invitation, error) {
	info, err := respond(ctx, tx, in, types.InvitationAccepted)
	if err != nil {
		return nil, err
	}

	member, err := database.NewMemberInfo(
		info.OrganizationID,
		info.InvitedUserID,
		info.InvitedByUserID,
		info.AssignedRole,
		tx.Now(),
	)
	if err != nil {
		return nil, err
	}
	if _, err := tx.CreateMemberInfo(ctx, member); err != nil {
		return nil, fmt.Errorf("accept invitation %s: %w", info.ID, err)
	}

	return info.ToInvitation(tx.Now()), nil
}

// AcceptTx runs Accept and records INVITATION_ACCEPTED in one transaction.
func AcceptTx(ctx context.Context, be *backend.Backend, in RespondInput) (*types.Invitation, error) {
	return audit.Execute(ctx, be, "invitations.Accept", audit.With(Accept, func(
		in RespondInput,
		out *types.Invitation,
	) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, out.OrganizationID, types.AuditInvitationAccepted)
	}), in)
}

// Reject rejects the invitation.
func Reject(ctx context.Context, tx database.Transaction, in RespondInput) (*types.Invitation, error) {
	info, err := respond(ctx, tx, in, types.InvitationRejected)
	if err != nil {
		return nil, err
	}

	return info.ToInvitation(tx.Now()), nil
}

// RejectTx runs Reject and records INVITATION_REJECTED in one transaction.
func RejectTx(ctx context.Context, be *backend.Backend, in RespondInput) (*types.Invitation, error) {
	return audit.Execute(ctx, be, "invitations.Reject", audit.With(Reject, func(
		in RespondInput,
		out *types.Invitation,
	) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, out.OrganizationID, types.AuditInvitationRejected)
	}), in)
}

// CancelInput is the input of Cancel.
type CancelInput struct {
	ActorID      types.ID
	InvitationID types.ID
}

// Cancel withdraws a pending invitation. Only owners of the organization
// may cancel.
func Cancel(ctx context.Context, tx database.Transaction, in CancelInput) (*types.Invitation, error) {
	info, err := findPending(ctx, tx, in.InvitationID)
	if err != nil {
		return nil, err
	}

	actor, err := authz.FindActor(ctx, tx, info.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanFire(actor.Role); err != nil {
		return nil, err
	}

	info.SetStatus(types.InvitationCanceled, tx.Now())
	if info, err = tx.UpdateInvitationInfo(ctx, info); err != nil {
		return nil, err
	}

	return info.ToInvitation(tx.Now()), nil
}

// CancelTx runs Cancel and records INVITATION_CANCELED in one transaction.
func CancelTx(ctx context.Context, be *backend.Backend, in CancelInput) (*types.Invitation, error) {
	return audit.Execute(ctx, be, "invitations.Cancel", audit.With(Cancel, func(
		in CancelInput,
		out *types.Invitation,
	) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, out.OrganizationID, types.AuditInvitationCanceled)
	}), in)
}

// ListInput is the input of List.
type ListInput struct {
	ActorID types.ID

	// Filter narrows the invitations. Without an organization the actor
	// lists the invitations sent to them.
	Filter database.InvitationFilter
}

// List returns the invitations matching the filter with their effective
// status. Listing the invitations of an organization takes an owner or an
// admin.
func List(ctx context.Context, tx database.Transaction, in ListInput) ([]*types.Invitation, error) {
	filter := in.Filter
	if filter.Status != "" {
		if err := filter.Status.Validate(); err != nil {
			return nil, err
		}
	}

	if filter.OrganizationID == "" {
		filter.InvitedUserID = in.ActorID
	} else if filter.InvitedUserID != in.ActorID {
		actor, err := authz.FindActor(ctx, tx, filter.OrganizationID, in.ActorID)
		if err != nil {
			return nil, err
		}
		if err := authz.CanManageOrganization(actor.Role); err != nil {
			return nil, err
		}
	}
	filter.Now = tx.Now()

	infos, err := tx.ListInvitationInfos(ctx, filter)
	if err != nil {
		return nil, err
	}

	invitations := make([]*types.Invitation, 0, len(infos))
	for _, info := range infos {
		invitations = append(invitations, info.ToInvitation(filter.Now))
	}
	return invitations, nil
}

// ListTx runs List in its own transaction.
func ListTx(ctx context.Context, be *backend.Backend, in ListInput) ([]*types.Invitation, error) {
	return audit.Execute(ctx, be, "invitations.List", List, in)
}

// respond checks that the actor may answer the invitation and stores the
// answer.
func respond(
	ctx context.Context,
	tx database.Transaction,
	in RespondInput,
	status types.InvitationStatus,
) (*database.InvitationInfo, error) {
	info, err := findPending(ctx, tx, in.InvitationID)
	if err != nil {
		return nil, err
	}
	if info.InvitedUserID != in.ActorID {
		return nil, ErrInvitationOfDiffUser
	}
	if _, err := users.FindActive(ctx, tx, in.ActorID); err != nil {
		return nil, err
	}
	if err := ensureNotMember(ctx, tx, info.OrganizationID, in.ActorID); err != nil {
		return nil, err
	}

	info.SetStatus(status, tx.Now())
	return tx.UpdateInvitationInfo(ctx, info)
}

// findPending returns the invitation if it is still answerable.
func findPending(ctx context.Context, tx database.Transaction, id types.ID) (*database.InvitationInfo, error) {
	info, err := database.Require(database.ErrInvitationNotFound, func() (*database.InvitationInfo, error) {
		return tx.FindInvitationInfoByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if info.Status != types.InvitationPending {
		return nil, fmt.Errorf("invitation %s is %s: %w", info.ID, info.Status, ErrInvitationNotPending)
	}
	if info.IsExpired(tx.Now()) {
		return nil, fmt.Errorf("invitation %s expired at %s: %w", info.ID, info.ExpiredAt, ErrInvitationExpired)
	}

	return info, nil
}

// ensureNotMember fails if the user already belongs to the organization.
func ensureNotMember(ctx context.Context, tx database.Transaction, orgID, userID types.ID) error {
	_, err := tx.FindMemberInfo(ctx, orgID, userID)
	if err == nil {
		return ErrUserAlreadyMember
	}
	if errors.IsNotFound(err) {
		return nil
	}
	return err
}

// expireStale stores EXPIRED on the pending invitations of the user whose
// deadline passed, so a new one can take their place.
func expireStale(ctx context.Context, tx database.Transaction, orgID, userID types.ID) error {
	stale, err := tx.ListInvitationInfos(ctx, database.InvitationFilter{
		OrganizationID: orgID,
		InvitedUserID:  userID,
		Status:         types.InvitationExpired,
		Now:            tx.Now(),
	})
	if err != nil {
		return err
	}

	for _, info := range stale {
		if info.Status != types.InvitationPending {
			continue
		}
		info.SetStatus(types.InvitationExpired, tx.Now())
		if _, err := tx.UpdateInvitationInfo(ctx, info); err != nil {
			return err
		}
	}
	return nil
}
