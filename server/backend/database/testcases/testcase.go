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

package testcases

import (
	"context"
	"testing"
	gotime "time"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// RunTaskInfoTest runs the task store testcases for the given db.
func RunTaskInfoTest(t *testing.T, db database.Database) {
	t.Run("task lifecycle test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			created, err := tx.CreateTaskInfo(ctx, database.NewTaskInfo(org.ID, "Plan", "", alice.ID, alice.ID, tx.Now()))
			assert.NoError(t, err)
			assert.Equal(t, types.TaskTodo, created.Status)

			assert.NoError(t, created.ChangeStatus(types.TaskInProgress, tx.Now()))
			updated, err := tx.UpdateTaskInfo(ctx, created)
			assert.NoError(t, err)
			assert.Equal(t, types.TaskInProgress, updated.Status)

			found, err := tx.FindTaskInfo(ctx, org.ID, created.ID)
			assert.NoError(t, err)
			assert.Equal(t, types.TaskInProgress, found.Status)

			_, err = tx.FindTaskInfo(ctx, notExistID, created.ID)
			assert.ErrorIs(t, err, database.ErrTaskNotFound)

			deleted, err := tx.DeleteTaskInfo(ctx, org.ID, created.ID)
			assert.NoError(t, err)
			assert.Equal(t, created.ID, deleted.ID)

			_, err = tx.DeleteTaskInfo(ctx, org.ID, created.ID)
			assert.ErrorIs(t, err, database.ErrTaskNotFound)

			_, err = tx.UpdateTaskInfo(ctx, created)
			assert.ErrorIs(t, err, database.ErrTaskNotFound)
			return nil
		})
	})

	t.Run("list tasks with filter test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			now := tx.Now()
			_, err := tx.CreateTaskInfo(ctx, database.NewTaskInfo(org.ID, "One", "", alice.ID, alice.ID, now))
			assert.NoError(t, err)
			second := database.NewTaskInfo(org.ID, "Two", "", bob.ID, alice.ID, now.Add(gotime.Second))
			assert.NoError(t, second.ChangeStatus(types.TaskCompleted, now))
			_, err = tx.CreateTaskInfo(ctx, second)
			assert.NoError(t, err)

			all, err := tx.ListTaskInfos(ctx, org.ID, database.TaskFilter{})
			assert.NoError(t, err)
			assert.Len(t, all, 2)
			assert.Equal(t, "One", all[0].Title)

			completed, err := tx.ListTaskInfos(ctx, org.ID, database.TaskFilter{Status: types.TaskCompleted})
			assert.NoError(t, err)
			assert.Len(t, completed, 1)
			assert.Equal(t, "Two", completed[0].Title)

			mine, err := tx.ListTaskInfos(ctx, org.ID, database.TaskFilter{AssignedTo: alice.ID})
			assert.NoError(t, err)
			assert.Len(t, mine, 1)
			assert.Equal(t, "One", mine[0].Title)
			return nil
		})
	})

	t.Run("task organization must exist test", func(t *testing.T) {
		alice := createUser(t, db, "alice")

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			_, err := tx.CreateTaskInfo(ctx, database.NewTaskInfo(notExistID, "x", "", alice.ID, alice.ID, tx.Now()))
			assert.ErrorIs(t, err, database.ErrOrganizationNotFound)
			return nil
		})
	})
}

// RunInvitationInfoTest runs the invitation store testcases for the given
// db.
func RunInvitationInfoTest(t *testing.T, db database.Database) {
	t.Run("one pending invitation per user test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			info, err := database.NewInvitationInfo(org.ID, bob.ID, alice.ID, database.Member, tx.Now(), gotime.Hour)
			assert.NoError(t, err)

			created, err := tx.CreateInvitationInfo(ctx, info)
			assert.NoError(t, err)

			pending, err := tx.HasPendingInvitation(ctx, org.ID, bob.ID)
			assert.NoError(t, err)
			assert.True(t, pending)

			_, err = tx.CreateInvitationInfo(ctx, info)
			assert.ErrorIs(t, err, database.ErrPendingInvitationExists)

			created.SetStatus(types.InvitationRejected, tx.Now())
			_, err = tx.UpdateInvitationInfo(ctx, created)
			assert.NoError(t, err)

			pending, err = tx.HasPendingInvitation(ctx, org.ID, bob.ID)
			assert.NoError(t, err)
			assert.False(t, pending)

			_, err = tx.CreateInvitationInfo(ctx, info)
			assert.NoError(t, err)
			return nil
		})
	})

	t.Run("invitation references must exist test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			info, err := database.NewInvitationInfo(org.ID, notExistID, alice.ID, database.Member, tx.Now(), gotime.Hour)
			assert.NoError(t, err)
			_, err = tx.CreateInvitationInfo(ctx, info)
			assert.ErrorIs(t, err, database.ErrUserNotFound)

			_, err = tx.FindInvitationInfoByID(ctx, notExistID)
			assert.ErrorIs(t, err, database.ErrInvitationNotFound)
			return nil
		})
	})

	t.Run("expire and list invitations test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		carol := createUser(t, db, "carol")
		org := createOrganization(t, db, alice)

		var stale, fresh *database.InvitationInfo
		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			now := tx.Now()
			info, err := database.NewInvitationInfo(org.ID, bob.ID, alice.ID, database.Member, now.Add(-2*gotime.Hour), gotime.Hour)
			assert.NoError(t, err)
			stale, err = tx.CreateInvitationInfo(ctx, info)
			assert.NoError(t, err)

			info, err = database.NewInvitationInfo(org.ID, carol.ID, alice.ID, database.Admin, now, gotime.Hour)
			assert.NoError(t, err)
			fresh, err = tx.CreateInvitationInfo(ctx, info)
			assert.NoError(t, err)
			return nil
		})

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			expired, err := tx.ListInvitationInfos(ctx, database.InvitationFilter{
				OrganizationID: org.ID,
				Status:         types.InvitationExpired,
				Now:            tx.Now(),
			})
			assert.NoError(t, err)
			assert.Len(t, expired, 1)
			assert.Equal(t, stale.ID, expired[0].ID)
			assert.Equal(t, types.InvitationPending, expired[0].Status)

			forCarol, err := tx.ListInvitationInfos(ctx, database.InvitationFilter{InvitedUserID: carol.ID})
			assert.NoError(t, err)
			assert.Len(t, forCarol, 1)
			assert.Equal(t, fresh.ID, forCarol[0].ID)
			return nil
		})

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			count, err := tx.ExpirePendingInvitations(ctx, tx.Now(), 100)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, count, 1)

			found, err := tx.FindInvitationInfoByID(ctx, stale.ID)
			assert.NoError(t, err)
			assert.Equal(t, types.InvitationExpired, found.Status)

			found, err = tx.FindInvitationInfoByID(ctx, fresh.ID)
			assert.NoError(t, err)
			assert.Equal(t, types.InvitationPending, found.Status)
			return nil
		})
	})
}

// RunAuditEventInfoTest runs the audit store testcases for the given db.
func RunAuditEventInfoTest(t *testing.T, db database.Database) {
	t.Run("append and list audit events test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			first, err := tx.AppendAuditEventInfo(ctx, database.NewAuditEventInfo(alice.ID, org.ID, types.AuditOrgCreated))
			assert.NoError(t, err)
			assert.Equal(t, tx.Now(), first.CreatedAt)

			second := database.NewAuditEventInfo(bob.ID, org.ID, types.AuditTaskCreated)
			second.CreatedAt = tx.Now().Add(gotime.Minute)
			_, err = tx.AppendAuditEventInfo(ctx, second)
			assert.NoError(t, err)

			_, err = tx.AppendAuditEventInfo(ctx, database.NewAuditEventInfo(bob.ID, "", types.AuditInvitationAccepted))
			assert.NoError(t, err)

			_, err = tx.AppendAuditEventInfo(ctx, database.NewAuditEventInfo(bob.ID, org.ID, "ORG_EXPLODED"))
			assert.ErrorIs(t, err, types.ErrInvalidAuditAction)
			return nil
		})

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			events, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{OrganizationID: org.ID})
			assert.NoError(t, err)
			assert.Len(t, events, 2)
			assert.Equal(t, types.AuditOrgCreated, events[0].Action)
			assert.Equal(t, types.AuditTaskCreated, events[1].Action)

			byBob, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{OrganizationID: org.ID, ActorID: bob.ID})
			assert.NoError(t, err)
			assert.Len(t, byBob, 1)

			limited, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{OrganizationID: org.ID, Limit: 1})
			assert.NoError(t, err)
			assert.Len(t, limited, 1)
			assert.Equal(t, types.AuditOrgCreated, limited[0].Action)

			unscoped, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{ActorID: bob.ID})
			assert.NoError(t, err)
			assert.Len(t, unscoped, 2)
			return nil
		})
	})
}
