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

// Package database provides the store interfaces of orgkeeper and the
// entities persisted through them.
package database

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
)

var (
	// ErrUserNotFound is returned when the user is not found.
	ErrUserNotFound = errors.NotFound("user not found").WithCode("ErrUserNotFound")

	// ErrUserAlreadyExists is returned when the user already exists.
	ErrUserAlreadyExists = errors.AlreadyExists("user already exists").WithCode("ErrUserAlreadyExists")

	// ErrOrganizationNotFound is returned when the organization is not found.
	ErrOrganizationNotFound = errors.NotFound("organization not found").WithCode("ErrOrganizationNotFound")

	// ErrMemberNotFound is returned when the membership row is not found.
	ErrMemberNotFound = errors.NotFound("member not found").WithCode("ErrMemberNotFound")

	// ErrMemberAlreadyExists is returned when the user already has a
	// membership in the organization.
	ErrMemberAlreadyExists = errors.AlreadyExists("member already exists").WithCode("ErrMemberAlreadyExists")

	// ErrTaskNotFound is returned when the task is not found.
	ErrTaskNotFound = errors.NotFound("task not found").WithCode("ErrTaskNotFound")

	// ErrInvitationNotFound is returned when the invitation is not found.
	ErrInvitationNotFound = errors.NotFound("invitation not found").WithCode("ErrInvitationNotFound")

	// ErrPendingInvitationExists is returned when the user already has a
	// pending invitation to the organization.
	ErrPendingInvitationExists = errors.AlreadyExists(
		"pending invitation already exists",
	).WithCode("ErrPendingInvitationExists")

	// ErrPersistence is returned when the store fails in a way no domain
	// error describes.
	ErrPersistence = errors.Internal("persistence failure").WithCode("ErrPersistence")
)

// Persistence marks the given store error as a persistence failure of op.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// Database represents the store of orgkeeper. Every read and write goes
// through a Transaction.
type Database interface {
	// Close all resources of this database.
	Close() error

	// RunInTransaction runs fn inside one transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// RunInTransaction runs fn inside one transaction of db and returns its
// result.
func RunInTransaction[R any](
	ctx context.Context,
	db Database,
	fn func(ctx context.Context, tx Transaction) (R, error),
) (R, error) {
	var result R
	if err := db.RunInTransaction(ctx, func(ctx context.Context, tx Transaction) error {
		r, err := fn(ctx, tx)
		if err != nil {
			return err
		}
		result = r
		return nil
	}); err != nil {
		var zero R
		return zero, err
	}

	return result, nil
}

// Require runs the lookup and replaces a not-found failure with notFound.
// Other failures pass through untouched.
func Require[T any](notFound error, find func() (T, error)) (T, error) {
	v, err := find()
	if err != nil {
		var zero T
		if errors.IsNotFound(err) {
			return zero, notFound
		}
		return zero, err
	}

	return v, nil
}

// Clock returns the current time. Stores stamp every transaction with it.
type Clock func() gotime.Time

// Transaction is a unit of work over the stores. Writes made through it are
// visible to later reads of the same transaction and become visible to
// others only on commit.
type Transaction interface {
	// Now returns the time the transaction started. Timestamps written in
	// the transaction use it.
	Now() gotime.Time

	// CreateUserInfo creates a new user.
	CreateUserInfo(ctx context.Context, info *UserInfo) (*UserInfo, error)

	// FindUserInfoByID returns the user of the given ID.
	FindUserInfoByID(ctx context.Context, id types.ID) (*UserInfo, error)

	// FindUserInfoByName returns the user of the given username.
	FindUserInfoByName(ctx context.Context, username string) (*UserInfo, error)

	// UpdateUserStatus changes the account status of the user.
	UpdateUserStatus(ctx context.Context, id types.ID, status types.UserStatus) (*UserInfo, error)

	// ListUserInfos returns all users ordered by username.
	ListUserInfos(ctx context.Context) ([]*UserInfo, error)

	// CreateOrganizationInfo creates a new organization.
	CreateOrganizationInfo(ctx context.Context, info *OrganizationInfo) (*OrganizationInfo, error)

	// FindOrganizationInfoByID returns the organization of the given ID.
	FindOrganizationInfoByID(ctx context.Context, id types.ID) (*OrganizationInfo, error)

	// UpdateOrganizationName renames the organization.
	UpdateOrganizationName(ctx context.Context, id types.ID, name string) (*OrganizationInfo, error)

	// DeleteOrganizationInfo deletes the organization together with its
	// members, tasks and invitations. Audit events are kept.
	DeleteOrganizationInfo(ctx context.Context, id types.ID) (*OrganizationInfo, error)

	// ListOrganizationInfosByMember returns the organizations the user
	// belongs to.
	ListOrganizationInfosByMember(ctx context.Context, userID types.ID) ([]*OrganizationInfo, error)

	// CreateMemberInfo creates a membership. The organization and the user
	// must exist.
	CreateMemberInfo(ctx context.Context, info *MemberInfo) (*MemberInfo, error)

	// FindMemberInfo returns the membership of the user in the organization.
	FindMemberInfo(ctx context.Context, orgID, userID types.ID) (*MemberInfo, error)

	// UpdateMemberRole changes the role of the membership.
	UpdateMemberRole(ctx context.Context, orgID, userID types.ID, role MemberRole) (*MemberInfo, error)

	// DeleteMemberInfo deletes the membership and returns the deleted row.
	DeleteMemberInfo(ctx context.Context, orgID, userID types.ID) (*MemberInfo, error)

	// ListMemberInfos returns the members of the organization ordered by
	// join time.
	ListMemberInfos(ctx context.Context, orgID types.ID) ([]*MemberInfo, error)

	// CreateTaskInfo creates a task. The organization must exist.
	CreateTaskInfo(ctx context.Context, info *TaskInfo) (*TaskInfo, error)

	// FindTaskInfo returns the task of the given ID in the organization.
	FindTaskInfo(ctx context.Context, orgID, taskID types.ID) (*TaskInfo, error)

	// UpdateTaskInfo replaces the stored task with the given one.
	UpdateTaskInfo(ctx context.Context, info *TaskInfo) (*TaskInfo, error)

	// DeleteTaskInfo deletes the task and returns the deleted row.
	DeleteTaskInfo(ctx context.Context, orgID, taskID types.ID) (*TaskInfo, error)

	// ListTaskInfos returns the tasks of the organization matching filter,
	// ordered by creation time.
	ListTaskInfos(ctx context.Context, orgID types.ID, filter TaskFilter) ([]*TaskInfo, error)

	// CreateInvitationInfo creates an invitation. At most one PENDING
	// invitation may exist per organization and user.
	CreateInvitationInfo(ctx context.Context, info *InvitationInfo) (*InvitationInfo, error)

	// FindInvitationInfoByID returns the invitation of the given ID.
	FindInvitationInfoByID(ctx context.Context, id types.ID) (*InvitationInfo, error)

	// UpdateInvitationInfo replaces the stored invitation with the given one.
	UpdateInvitationInfo(ctx context.Context, info *InvitationInfo) (*InvitationInfo, error)

	// ListInvitationInfos returns the invitations matching filter, ordered
	// by creation time.
	ListInvitationInfos(ctx context.Context, filter InvitationFilter) ([]*InvitationInfo, error)

	// HasPendingInvitation returns true if a PENDING row exists for the user
	// in the organization.
	HasPendingInvitation(ctx context.Context, orgID, userID types.ID) (bool, error)

	// ExpirePendingInvitations flips at most limit PENDING invitations whose
	// deadline is not after now to EXPIRED and returns how many it changed.
	ExpirePendingInvitations(ctx context.Context, now gotime.Time, limit int) (int, error)

	// AppendAuditEventInfo appends an audit event. Events are never updated
	// or deleted.
	AppendAuditEventInfo(ctx context.Context, info *AuditEventInfo) (*AuditEventInfo, error)

	// ListAuditEventInfos returns the audit events matching filter, oldest
	// first.
	ListAuditEventInfos(ctx context.Context, filter AuditEventFilter) ([]*AuditEventInfo, error)
}

// TaskFilter narrows a task listing. Zero fields match everything.
type TaskFilter struct {
	Status     types.TaskStatus
	AssignedTo types.ID
}

// Match returns true if the task passes the filter.
func (f TaskFilter) Match(info *TaskInfo) bool {
	if f.Status != "" && info.Status != f.Status {
		return false
	}
	if f.AssignedTo != "" && info.AssignedTo != f.AssignedTo {
		return false
	}
	return true
}

// InvitationFilter narrows an invitation listing. Zero fields match
// everything. Status is compared against the effective status at Now, so a
// stale PENDING row matches EXPIRED.
type InvitationFilter struct {
	OrganizationID types.ID
	InvitedUserID  types.ID
	Status         types.InvitationStatus
	Now            gotime.Time
}

// Match returns true if the invitation passes the filter.
func (f InvitationFilter) Match(info *InvitationInfo) bool {
	if f.OrganizationID != "" && info.OrganizationID != f.OrganizationID {
		return false
	}
	if f.InvitedUserID != "" && info.InvitedUserID != f.InvitedUserID {
		return false
	}
	if f.Status != "" && info.EffectiveStatus(f.Now) != f.Status {
		return false
	}
	return true
}

// AuditEventFilter narrows an audit listing. Zero fields match everything.
type AuditEventFilter struct {
	OrganizationID types.ID
	ActorID        types.ID
	Action         types.AuditAction
	Since          gotime.Time
	Until          gotime.Time
	Limit          int
}

// Match returns true if the event passes the filter. Limit is applied by
// the store.
func (f AuditEventFilter) Match(info *AuditEventInfo) bool {
	if f.OrganizationID != "" && info.OrganizationID != f.OrganizationID {
		return false
	}
	if f.ActorID != "" && info.ActorID != f.ActorID {
		return false
	}
	if f.Action != "" && info.Action != f.Action {
		return false
	}
	if !f.Since.IsZero() && info.CreatedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && !info.CreatedAt.Before(f.Until) {
		return false
	}
	return true
}
