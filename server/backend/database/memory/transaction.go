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

package memory

import (
	"context"
	"fmt"
	"sort"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// Txn is a unit of work over a memdb write transaction.
type Txn struct {
	txn *memdb.Txn
	now gotime.Time
}

// Now returns the time the transaction started.
func (t *Txn) Now() gotime.Time {
	return t.now
}

// CreateUserInfo creates a new user.
func (t *Txn) CreateUserInfo(_ context.Context, info *database.UserInfo) (*database.UserInfo, error) {
	existing, err := t.txn.First(tblUsers, "username", info.Username)
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s: %w", info.Username, database.ErrUserAlreadyExists)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := t.txn.Insert(tblUsers, info); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return info.DeepCopy(), nil
}

// FindUserInfoByID returns the user of the given ID.
func (t *Txn) FindUserInfoByID(_ context.Context, id types.ID) (*database.UserInfo, error) {
	raw, err := t.txn.First(tblUsers, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrUserNotFound)
	}

	return raw.(*database.UserInfo).DeepCopy(), nil
}

// FindUserInfoByName returns the user of the given username.
func (t *Txn) FindUserInfoByName(_ context.Context, username string) (*database.UserInfo, error) {
	raw, err := t.txn.First(tblUsers, "username", username)
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", username, database.ErrUserNotFound)
	}

	return raw.(*database.UserInfo).DeepCopy(), nil
}

// UpdateUserStatus changes the account status of the user.
func (t *Txn) UpdateUserStatus(
	ctx context.Context,
	id types.ID,
	status types.UserStatus,
) (*database.UserInfo, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	info, err := t.FindUserInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info.Status = status
	if err := t.txn.Insert(tblUsers, info); err != nil {
		return nil, fmt.Errorf("update user status: %w", err)
	}

	return info.DeepCopy(), nil
}

// ListUserInfos returns all users ordered by username.
func (t *Txn) ListUserInfos(_ context.Context) ([]*database.UserInfo, error) {
	iter, err := t.txn.Get(tblUsers, "username")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return collect(iter, func(info *database.UserInfo) bool { return true }), nil
}

// CreateOrganizationInfo creates a new organization.
func (t *Txn) CreateOrganizationInfo(
	ctx context.Context,
	info *database.OrganizationInfo,
) (*database.OrganizationInfo, error) {
	if _, err := t.FindUserInfoByID(ctx, info.CreatedBy); err != nil {
		return nil, err
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := t.txn.Insert(tblOrganizations, info); err != nil {
		return nil, fmt.Errorf("insert organization: %w", err)
	}

	return info.DeepCopy(), nil
}

// FindOrganizationInfoByID returns the organization of the given ID.
func (t *Txn) FindOrganizationInfoByID(_ context.Context, id types.ID) (*database.OrganizationInfo, error) {
	raw, err := t.txn.First(tblOrganizations, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find organization: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrOrganizationNotFound)
	}

	return raw.(*database.OrganizationInfo).DeepCopy(), nil
}

// UpdateOrganizationName renames the organization.
func (t *Txn) UpdateOrganizationName(
	ctx context.Context,
	id types.ID,
	name string,
) (*database.OrganizationInfo, error) {
	info, err := t.FindOrganizationInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info.Name = name
	info.UpdatedAt = t.now
	if err := t.txn.Insert(tblOrganizations, info); err != nil {
		return nil, fmt.Errorf("update organization name: %w", err)
	}

	return info.DeepCopy(), nil
}

// DeleteOrganizationInfo deletes the organization together with its
// members, tasks and invitations.
func (t *Txn) DeleteOrganizationInfo(ctx context.Context, id types.ID) (*database.OrganizationInfo, error) {
	info, err := t.FindOrganizationInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, tbl := range []string{tblMembers, tblTasks, tblInvitations} {
		if _, err := t.txn.DeleteAll(tbl, "organization_id", id.String()); err != nil {
			return nil, fmt.Errorf("delete %s of organization: %w", tbl, err)
		}
	}
	if err := t.txn.Delete(tblOrganizations, info); err != nil {
		return nil, fmt.Errorf("delete organization: %w", err)
	}

	return info, nil
}

// ListOrganizationInfosByMember returns the organizations the user belongs
// to, ordered by creation time.
func (t *Txn) ListOrganizationInfosByMember(
	ctx context.Context,
	userID types.ID,
) ([]*database.OrganizationInfo, error) {
	iter, err := t.txn.Get(tblMembers, "user_id", userID.String())
	if err != nil {
		return nil, fmt.Errorf("list organizations by member: %w", err)
	}

	var infos []*database.OrganizationInfo
	for _, member := range collect(iter, func(info *database.MemberInfo) bool { return true }) {
		org, err := t.FindOrganizationInfoByID(ctx, member.OrganizationID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, org)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return before(infos[i].CreatedAt, infos[i].ID, infos[j].CreatedAt, infos[j].ID)
	})
	return infos, nil
}

// CreateMemberInfo creates a membership.
func (t *Txn) CreateMemberInfo(ctx context.Context, info *database.MemberInfo) (*database.MemberInfo, error) {
	if _, err := t.FindOrganizationInfoByID(ctx, info.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := t.FindUserInfoByID(ctx, info.UserID); err != nil {
		return nil, err
	}

	existing, err := t.txn.First(
		tblMembers,
		"organization_id_user_id",
		info.OrganizationID.String(),
		info.UserID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s in %s: %w", info.UserID, info.OrganizationID, database.ErrMemberAlreadyExists)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := t.txn.Insert(tblMembers, info); err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}

	return info.DeepCopy(), nil
}

// FindMemberInfo returns the membership of the user in the organization.
func (t *Txn) FindMemberInfo(_ context.Context, orgID, userID types.ID) (*database.MemberInfo, error) {
	raw, err := t.txn.First(tblMembers, "organization_id_user_id", orgID.String(), userID.String())
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s in %s: %w", userID, orgID, database.ErrMemberNotFound)
	}

	return raw.(*database.MemberInfo).DeepCopy(), nil
}

// UpdateMemberRole changes the role of the membership.
func (t *Txn) UpdateMemberRole(
	ctx context.Context,
	orgID, userID types.ID,
	role database.MemberRole,
) (*database.MemberInfo, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	info, err := t.FindMemberInfo(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	info.Role = role
	if err := t.txn.Insert(tblMembers, info); err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}

	return info.DeepCopy(), nil
}

// DeleteMemberInfo deletes the membership and returns the deleted row.
func (t *Txn) DeleteMemberInfo(ctx context.Context, orgID, userID types.ID) (*database.MemberInfo, error) {
	info, err := t.FindMemberInfo(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if err := t.txn.Delete(tblMembers, info); err != nil {
		return nil, fmt.Errorf("delete member: %w", err)
	}

	return info, nil
}

// ListMemberInfos returns the members of the organization ordered by join
// time.
func (t *Txn) ListMemberInfos(_ context.Context, orgID types.ID) ([]*database.MemberInfo, error) {
	iter, err := t.txn.Get(tblMembers, "organization_id", orgID.String())
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	infos := collect(iter, func(info *database.MemberInfo) bool { return true })
	sort.SliceStable(infos, func(i, j int) bool {
		return before(infos[i].JoinedAt, infos[i].ID, infos[j].JoinedAt, infos[j].ID)
	})
	return infos, nil
}

// CreateTaskInfo creates a task.
func (t *Txn) CreateTaskInfo(ctx context.Context, info *database.TaskInfo) (*database.TaskInfo, error) {
	if _, err := t.FindOrganizationInfoByID(ctx, info.OrganizationID); err != nil {
		return nil, err
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := t.txn.Insert(tblTasks, info); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return info.DeepCopy(), nil
}

// FindTaskInfo returns the task of the given ID in the organization.
func (t *Txn) FindTaskInfo(_ context.Context, orgID, taskID types.ID) (*database.TaskInfo, error) {
	raw, err := t.txn.First(tblTasks, "id", taskID.String())
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if raw == nil || raw.(*database.TaskInfo).OrganizationID != orgID {
		return nil, fmt.Errorf("%s in %s: %w", taskID, orgID, database.ErrTaskNotFound)
	}

	return raw.(*database.TaskInfo).DeepCopy(), nil
}

// UpdateTaskInfo replaces the stored task with the given one.
func (t *Txn) UpdateTaskInfo(ctx context.Context, info *database.TaskInfo) (*database.TaskInfo, error) {
	if _, err := t.FindTaskInfo(ctx, info.OrganizationID, info.ID); err != nil {
		return nil, err
	}

	info = info.DeepCopy()
	if err := t.txn.Insert(tblTasks, info); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return info.DeepCopy(), nil
}

// DeleteTaskInfo deletes the task and returns the deleted row.
func (t *Txn) DeleteTaskInfo(ctx context.Context, orgID, taskID types.ID) (*database.TaskInfo, error) {
	info, err := t.FindTaskInfo(ctx, orgID, taskID)
	if err != nil {
		return nil, err
	}

	if err := t.txn.Delete(tblTasks, info); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	return info, nil
}

// ListTaskInfos returns the tasks of the organization matching filter.
func (t *Txn) ListTaskInfos(
	_ context.Context,
	orgID types.ID,
	filter database.TaskFilter,
) ([]*database.TaskInfo, error) {
	iter, err := t.txn.Get(tblTasks, "organization_id", orgID.String())
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	infos := collect(iter, filter.Match)
	sort.SliceStable(infos, func(i, j int) bool {
		return before(infos[i].CreatedAt, infos[i].ID, infos[j].CreatedAt, infos[j].ID)
	})
	return infos, nil
}

// CreateInvitationInfo creates an invitation.
func (t *Txn) CreateInvitationInfo(
	ctx context.Context,
	info *database.InvitationInfo,
) (*database.InvitationInfo, error) {
	if _, err := t.FindOrganizationInfoByID(ctx, info.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := t.FindUserInfoByID(ctx, info.InvitedUserID); err != nil {
		return nil, err
	}

	if info.Status == types.InvitationPending {
		pending, err := t.HasPendingInvitation(ctx, info.OrganizationID, info.InvitedUserID)
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, fmt.Errorf(
				"%s in %s: %w",
				info.InvitedUserID,
				info.OrganizationID,
				database.ErrPendingInvitationExists,
			)
		}
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := t.txn.Insert(tblInvitations, info); err != nil {
		return nil, fmt.Errorf("insert invitation: %w", err)
	}

	return info.DeepCopy(), nil
}

// FindInvitationInfoByID returns the invitation of the given ID.
func (t *Txn) FindInvitationInfoByID(_ context.Context, id types.ID) (*database.InvitationInfo, error) {
	raw, err := t.txn.First(tblInvitations, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrInvitationNotFound)
	}

	return raw.(*database.InvitationInfo).DeepCopy(), nil
}

// UpdateInvitationInfo replaces the stored invitation with the given one.
func (t *Txn) UpdateInvitationInfo(
	ctx context.Context,
	info *database.InvitationInfo,
) (*database.InvitationInfo, error) {
	if _, err := t.FindInvitationInfoByID(ctx, info.ID); err != nil {
		return nil, err
	}

	info = info.DeepCopy()
	if err := t.txn.Insert(tblInvitations, info); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}

	return info.DeepCopy(), nil
}

// ListInvitationInfos returns the invitations matching filter.
func (t *Txn) ListInvitationInfos(
	_ context.Context,
	filter database.InvitationFilter,
) ([]*database.InvitationInfo, error) {
	var iter memdb.ResultIterator
	var err error
	switch {
	case filter.OrganizationID != "":
		iter, err = t.txn.Get(tblInvitations, "organization_id", filter.OrganizationID.String())
	case filter.InvitedUserID != "":
		iter, err = t.txn.Get(tblInvitations, "invited_user_id", filter.InvitedUserID.String())
	default:
		iter, err = t.txn.Get(tblInvitations, "id")
	}
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	infos := collect(iter, filter.Match)
	sort.SliceStable(infos, func(i, j int) bool {
		return before(infos[i].CreatedAt, infos[i].ID, infos[j].CreatedAt, infos[j].ID)
	})
	return infos, nil
}

// HasPendingInvitation returns true if a PENDING row exists for the user in
// the organization.
func (t *Txn) HasPendingInvitation(_ context.Context, orgID, userID types.ID) (bool, error) {
	raw, err := t.txn.First(
		tblInvitations,
		"organization_id_invited_user_id_status",
		orgID.String(),
		userID.String(),
		string(types.InvitationPending),
	)
	if err != nil {
		return false, fmt.Errorf("find pending invitation: %w", err)
	}

	return raw != nil, nil
}

// ExpirePendingInvitations flips stale PENDING invitations to EXPIRED.
func (t *Txn) ExpirePendingInvitations(_ context.Context, now gotime.Time, limit int) (int, error) {
	iter, err := t.txn.Get(tblInvitations, "status", string(types.InvitationPending))
	if err != nil {
		return 0, fmt.Errorf("find pending invitations: %w", err)
	}

	stale := collect(iter, func(info *database.InvitationInfo) bool {
		return info.IsExpired(now)
	})
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}

	for _, info := range stale {
		info.SetStatus(types.InvitationExpired, now)
		if err := t.txn.Insert(tblInvitations, info); err != nil {
			return 0, fmt.Errorf("expire invitation: %w", err)
		}
	}

	return len(stale), nil
}

// AppendAuditEventInfo appends an audit event.
func (t *Txn) AppendAuditEventInfo(
	_ context.Context,
	info *database.AuditEventInfo,
) (*database.AuditEventInfo, error) {
	if err := info.Action.Validate(); err != nil {
		return nil, err
	}

	info = info.DeepCopy()
	info.ID = newID()
	if info.CreatedAt.IsZero() {
		info.CreatedAt = t.now
	}
	if err := t.txn.Insert(tblAuditEvents, info); err != nil {
		return nil, fmt.Errorf("insert audit event: %w", err)
	}

	return info.DeepCopy(), nil
}

// ListAuditEventInfos returns the audit events matching filter, oldest
// first.
func (t *Txn) ListAuditEventInfos(
	_ context.Context,
	filter database.AuditEventFilter,
) ([]*database.AuditEventInfo, error) {
	var iter memdb.ResultIterator
	var err error
	if filter.OrganizationID != "" {
		iter, err = t.txn.Get(tblAuditEvents, "organization_id", filter.OrganizationID.String())
	} else {
		iter, err = t.txn.Get(tblAuditEvents, "id")
	}
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	infos := collect(iter, filter.Match)
	sort.SliceStable(infos, func(i, j int) bool {
		return before(infos[i].CreatedAt, infos[i].ID, infos[j].CreatedAt, infos[j].ID)
	})
	if filter.Limit > 0 && len(infos) > filter.Limit {
		infos = infos[:filter.Limit]
	}
	return infos, nil
}

// collect drains the iterator into deep copies of the rows that pass keep.
func collect[T interface{ DeepCopy() T }](iter memdb.ResultIterator, keep func(T) bool) []T {
	var infos []T
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(T)
		if keep(info) {
			infos = append(infos, info.DeepCopy())
		}
	}
	return infos
}

func before(a gotime.Time, aID types.ID, b gotime.Time, bID types.ID) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return aID < bID
}
