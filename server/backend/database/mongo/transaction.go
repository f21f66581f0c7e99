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

package mongo

import (
	"context"
	"errors"
	"fmt"
	gotime "time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// Txn is a unit of work over a MongoDB session transaction. The context
// passed to its methods carries the session.
type Txn struct {
	db  *mongo.Database
	now gotime.Time
}

// Now returns the time the transaction started.
func (t *Txn) Now() gotime.Time {
	return t.now
}

func (t *Txn) collection(name string) *mongo.Collection {
	return t.db.Collection(name)
}

// findOne decodes the single document matching filter into out.
func (t *Txn) findOne(ctx context.Context, col string, filter bson.M, out any, notFound error) error {
	result := t.collection(col).FindOne(ctx, filter)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("find %s %v: %w", col, filter, notFound)
		}
		return mapError("find "+col, err, nil)
	}

	if err := result.Decode(out); err != nil {
		return mapError("decode "+col, err, nil)
	}
	return nil
}

// exists returns true if a document matches filter.
func (t *Txn) exists(ctx context.Context, col string, filter bson.M) (bool, error) {
	n, err := t.collection(col).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, mapError("count "+col, err, nil)
	}
	return n > 0, nil
}

// findAll decodes every document matching filter.
func findAll[T any](
	ctx context.Context,
	col *mongo.Collection,
	filter bson.M,
	opts *options.FindOptionsBuilder,
) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError("find "+col.Name(), err, nil)
	}

	var infos []T
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, mapError("fetch "+col.Name(), err, nil)
	}
	return infos, nil
}

// updateOne applies update to the document matching filter and decodes the
// result into out.
func (t *Txn) updateOne(
	ctx context.Context,
	col string,
	filter bson.M,
	update bson.M,
	out any,
	notFound error,
) error {
	result := t.collection(col).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("update %s %v: %w", col, filter, notFound)
		}
		return mapError("update "+col, err, nil)
	}

	if err := result.Decode(out); err != nil {
		return mapError("decode "+col, err, nil)
	}
	return nil
}

// deleteOne deletes the document matching filter and decodes it into out.
func (t *Txn) deleteOne(ctx context.Context, col string, filter bson.M, out any, notFound error) error {
	result := t.collection(col).FindOneAndDelete(ctx, filter)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("delete %s %v: %w", col, filter, notFound)
		}
		return mapError("delete "+col, err, nil)
	}

	if err := result.Decode(out); err != nil {
		return mapError("decode "+col, err, nil)
	}
	return nil
}

// replaceOne replaces the document matching filter with doc.
func (t *Txn) replaceOne(
	ctx context.Context,
	col string,
	filter bson.M,
	doc any,
	notFound error,
	duplicate error,
) error {
	result, err := t.collection(col).ReplaceOne(ctx, filter, doc)
	if err != nil {
		return mapError("replace "+col, err, duplicate)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("replace %s %v: %w", col, filter, notFound)
	}
	return nil
}

func byCreation() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{
		{Key: "created_at", Value: int32(1)},
		{Key: "_id", Value: int32(1)},
	})
}

// CreateUserInfo creates a new user.
func (t *Txn) CreateUserInfo(ctx context.Context, info *database.UserInfo) (*database.UserInfo, error) {
	taken, err := t.exists(ctx, ColUsers, bson.M{"username": info.Username})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", info.Username, database.ErrUserAlreadyExists)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if _, err := t.collection(ColUsers).InsertOne(ctx, info); err != nil {
		return nil, mapError("insert user", err, database.ErrUserAlreadyExists)
	}

	return info, nil
}

// FindUserInfoByID returns the user of the given ID.
func (t *Txn) FindUserInfoByID(ctx context.Context, id types.ID) (*database.UserInfo, error) {
	var info database.UserInfo
	if err := t.findOne(ctx, ColUsers, bson.M{"_id": id}, &info, database.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &info, nil
}

// FindUserInfoByName returns the user of the given username.
func (t *Txn) FindUserInfoByName(ctx context.Context, username string) (*database.UserInfo, error) {
	var info database.UserInfo
	if err := t.findOne(ctx, ColUsers, bson.M{"username": username}, &info, database.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &info, nil
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

	var info database.UserInfo
	if err := t.updateOne(
		ctx,
		ColUsers,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{StatusKey: status}},
		&info,
		database.ErrUserNotFound,
	); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListUserInfos returns all users ordered by username.
func (t *Txn) ListUserInfos(ctx context.Context) ([]*database.UserInfo, error) {
	return findAll[*database.UserInfo](
		ctx,
		t.collection(ColUsers),
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "username", Value: int32(1)}}),
	)
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
	if _, err := t.collection(ColOrganizations).InsertOne(ctx, info); err != nil {
		return nil, mapError("insert organization", err, nil)
	}

	return info, nil
}

// FindOrganizationInfoByID returns the organization of the given ID.
func (t *Txn) FindOrganizationInfoByID(ctx context.Context, id types.ID) (*database.OrganizationInfo, error) {
	var info database.OrganizationInfo
	if err := t.findOne(ctx, ColOrganizations, bson.M{"_id": id}, &info, database.ErrOrganizationNotFound); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateOrganizationName renames the organization.
func (t *Txn) UpdateOrganizationName(
	ctx context.Context,
	id types.ID,
	name string,
) (*database.OrganizationInfo, error) {
	var info database.OrganizationInfo
	if err := t.updateOne(
		ctx,
		ColOrganizations,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "updated_at": t.now}},
		&info,
		database.ErrOrganizationNotFound,
	); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteOrganizationInfo deletes the organization together with its
// members, tasks and invitations.
func (t *Txn) DeleteOrganizationInfo(ctx context.Context, id types.ID) (*database.OrganizationInfo, error) {
	var info database.OrganizationInfo
	if err := t.deleteOne(ctx, ColOrganizations, bson.M{"_id": id}, &info, database.ErrOrganizationNotFound); err != nil {
		return nil, err
	}

	for _, col := range []string{ColMembers, ColTasks, ColInvitations} {
		if _, err := t.collection(col).DeleteMany(ctx, bson.M{"organization_id": id}); err != nil {
			return nil, mapError("delete "+col+" of organization", err, nil)
		}
	}

	return &info, nil
}

// ListOrganizationInfosByMember returns the organizations the user belongs
// to, ordered by creation time.
func (t *Txn) ListOrganizationInfosByMember(
	ctx context.Context,
	userID types.ID,
) ([]*database.OrganizationInfo, error) {
	members, err := findAll[*database.MemberInfo](ctx, t.collection(ColMembers), bson.M{"user_id": userID}, options.Find())
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	orgIDs := make([]types.ID, 0, len(members))
	for _, member := range members {
		orgIDs = append(orgIDs, member.OrganizationID)
	}

	return findAll[*database.OrganizationInfo](
		ctx,
		t.collection(ColOrganizations),
		bson.M{"_id": bson.M{"$in": orgIDs}},
		byCreation(),
	)
}

// CreateMemberInfo creates a membership.
func (t *Txn) CreateMemberInfo(ctx context.Context, info *database.MemberInfo) (*database.MemberInfo, error) {
	if _, err := t.FindOrganizationInfoByID(ctx, info.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := t.FindUserInfoByID(ctx, info.UserID); err != nil {
		return nil, err
	}

	taken, err := t.exists(ctx, ColMembers, bson.M{
		"organization_id": info.OrganizationID,
		"user_id":         info.UserID,
	})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%s in %s: %w", info.UserID, info.OrganizationID, database.ErrMemberAlreadyExists)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if _, err := t.collection(ColMembers).InsertOne(ctx, info); err != nil {
		return nil, mapError("insert member", err, database.ErrMemberAlreadyExists)
	}

	return info, nil
}

// FindMemberInfo returns the membership of the user in the organization.
func (t *Txn) FindMemberInfo(ctx context.Context, orgID, userID types.ID) (*database.MemberInfo, error) {
	var info database.MemberInfo
	if err := t.findOne(ctx, ColMembers, bson.M{
		"organization_id": orgID,
		"user_id":         userID,
	}, &info, database.ErrMemberNotFound); err != nil {
		return nil, err
	}
	return &info, nil
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

	var info database.MemberInfo
	if err := t.updateOne(
		ctx,
		ColMembers,
		bson.M{"organization_id": orgID, "user_id": userID},
		bson.M{"$set": bson.M{"role": role}},
		&info,
		database.ErrMemberNotFound,
	); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteMemberInfo deletes the membership and returns the deleted row.
func (t *Txn) DeleteMemberInfo(ctx context.Context, orgID, userID types.ID) (*database.MemberInfo, error) {
	var info database.MemberInfo
	if err := t.deleteOne(ctx, ColMembers, bson.M{
		"organization_id": orgID,
		"user_id":         userID,
	}, &info, database.ErrMemberNotFound); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListMemberInfos returns the members of the organization ordered by join
// time.
func (t *Txn) ListMemberInfos(ctx context.Context, orgID types.ID) ([]*database.MemberInfo, error) {
	return findAll[*database.MemberInfo](
		ctx,
		t.collection(ColMembers),
		bson.M{"organization_id": orgID},
		options.Find().SetSort(bson.D{
			{Key: "joined_at", Value: int32(1)},
			{Key: "_id", Value: int32(1)},
		}),
	)
}

// CreateTaskInfo creates a task.
func (t *Txn) CreateTaskInfo(ctx context.Context, info *database.TaskInfo) (*database.TaskInfo, error) {
	if _, err := t.FindOrganizationInfoByID(ctx, info.OrganizationID); err != nil {
		return nil, err
	}

	info = info.DeepCopy()
	info.ID = newID()
	if _, err := t.collection(ColTasks).InsertOne(ctx, info); err != nil {
		return nil, mapError("insert task", err, nil)
	}

	return info, nil
}

// FindTaskInfo returns the task of the given ID in the organization.
func (t *Txn) FindTaskInfo(ctx context.Context, orgID, taskID types.ID) (*database.TaskInfo, error) {
	var info database.TaskInfo
	if err := t.findOne(ctx, ColTasks, bson.M{
		"_id":             taskID,
		"organization_id": orgID,
	}, &info, database.ErrTaskNotFound); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateTaskInfo replaces the stored task with the given one.
func (t *Txn) UpdateTaskInfo(ctx context.Context, info *database.TaskInfo) (*database.TaskInfo, error) {
	if err := t.replaceOne(ctx, ColTasks, bson.M{
		"_id":             info.ID,
		"organization_id": info.OrganizationID,
	}, info, database.ErrTaskNotFound, nil); err != nil {
		return nil, err
	}
	return info.DeepCopy(), nil
}

// DeleteTaskInfo deletes the task and returns the deleted row.
func (t *Txn) DeleteTaskInfo(ctx context.Context, orgID, taskID types.ID) (*database.TaskInfo, error) {
	var info database.TaskInfo
	if err := t.deleteOne(ctx, ColTasks, bson.M{
		"_id":             taskID,
		"organization_id": orgID,
	}, &info, database.ErrTaskNotFound); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListTaskInfos returns the tasks of the organization matching filter.
func (t *Txn) ListTaskInfos(
	ctx context.Context,
	orgID types.ID,
	filter database.TaskFilter,
) ([]*database.TaskInfo, error) {
	query := bson.M{"organization_id": orgID}
	if filter.Status != "" {
		query[StatusKey] = filter.Status
	}
	if filter.AssignedTo != "" {
		query["assigned_to"] = filter.AssignedTo
	}

	return findAll[*database.TaskInfo](ctx, t.collection(ColTasks), query, byCreation())
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
	if _, err := t.collection(ColInvitations).InsertOne(ctx, info); err != nil {
		return nil, mapError("insert invitation", err, database.ErrPendingInvitationExists)
	}

	return info, nil
}

// FindInvitationInfoByID returns the invitation of the given ID.
func (t *Txn) FindInvitationInfoByID(ctx context.Context, id types.ID) (*database.InvitationInfo, error) {
	var info database.InvitationInfo
	if err := t.findOne(ctx, ColInvitations, bson.M{"_id": id}, &info, database.ErrInvitationNotFound); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateInvitationInfo replaces the stored invitation with the given one.
func (t *Txn) UpdateInvitationInfo(
	ctx context.Context,
	info *database.InvitationInfo,
) (*database.InvitationInfo, error) {
	if err := t.replaceOne(
		ctx,
		ColInvitations,
		bson.M{"_id": info.ID},
		info,
		database.ErrInvitationNotFound,
		database.ErrPendingInvitationExists,
	); err != nil {
		return nil, err
	}
	return info.DeepCopy(), nil
}

// ListInvitationInfos returns the invitations matching filter.
func (t *Txn) ListInvitationInfos(
	ctx context.Context,
	filter database.InvitationFilter,
) ([]*database.InvitationInfo, error) {
	return findAll[*database.InvitationInfo](
		ctx,
		t.collection(ColInvitations),
		invitationQuery(filter),
		byCreation(),
	)
}

// invitationQuery translates the filter. Effective statuses are resolved
// against the expiry deadline so that the result matches
// InvitationFilter.Match.
func invitationQuery(filter database.InvitationFilter) bson.M {
	query := bson.M{}
	if filter.OrganizationID != "" {
		query["organization_id"] = filter.OrganizationID
	}
	if filter.InvitedUserID != "" {
		query["invited_user_id"] = filter.InvitedUserID
	}

	switch {
	case filter.Status == "":
	case filter.Now.IsZero():
		query[StatusKey] = filter.Status
	case filter.Status == types.InvitationPending:
		query[StatusKey] = types.InvitationPending
		query["expired_at"] = bson.M{"$gt": filter.Now}
	case filter.Status == types.InvitationExpired:
		query["$or"] = bson.A{
			bson.M{StatusKey: types.InvitationExpired},
			bson.M{StatusKey: types.InvitationPending, "expired_at": bson.M{"$lte": filter.Now}},
		}
	default:
		query[StatusKey] = filter.Status
	}

	return query
}

// HasPendingInvitation returns true if a PENDING row exists for the user in
// the organization.
func (t *Txn) HasPendingInvitation(ctx context.Context, orgID, userID types.ID) (bool, error) {
	return t.exists(ctx, ColInvitations, bson.M{
		"organization_id": orgID,
		"invited_user_id": userID,
		StatusKey:         types.InvitationPending,
	})
}

// ExpirePendingInvitations flips stale PENDING invitations to EXPIRED.
func (t *Txn) ExpirePendingInvitations(ctx context.Context, now gotime.Time, limit int) (int, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	stale, err := findAll[*database.InvitationInfo](ctx, t.collection(ColInvitations), bson.M{
		StatusKey:    types.InvitationPending,
		"expired_at": bson.M{"$lte": now},
	}, opts)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]types.ID, 0, len(stale))
	for _, info := range stale {
		ids = append(ids, info.ID)
	}

	result, err := t.collection(ColInvitations).UpdateMany(ctx, bson.M{
		"_id":     bson.M{"$in": ids},
		StatusKey: types.InvitationPending,
	}, bson.M{"$set": bson.M{
		StatusKey:    types.InvitationExpired,
		"updated_at": now,
	}})
	if err != nil {
		return 0, mapError("expire invitations", err, nil)
	}

	return int(result.ModifiedCount), nil
}

// AppendAuditEventInfo appends an audit event.
func (t *Txn) AppendAuditEventInfo(
	ctx context.Context,
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
	if _, err := t.collection(ColAuditEvents).InsertOne(ctx, info); err != nil {
		return nil, mapError("insert audit event", err, nil)
	}

	return info, nil
}

// ListAuditEventInfos returns the audit events matching filter, oldest
// first.
func (t *Txn) ListAuditEventInfos(
	ctx context.Context,
	filter database.AuditEventFilter,
) ([]*database.AuditEventInfo, error) {
	query := bson.M{}
	if filter.OrganizationID != "" {
		query["organization_id"] = filter.OrganizationID
	}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}

	window := bson.M{}
	if !filter.Since.IsZero() {
		window["$gte"] = filter.Since
	}
	if !filter.Until.IsZero() {
		window["$lt"] = filter.Until
	}
	if len(window) > 0 {
		query["created_at"] = window
	}

	opts := byCreation()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	return findAll[*database.AuditEventInfo](ctx, t.collection(ColAuditEvents), query, opts)
}
