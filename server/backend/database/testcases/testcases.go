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

// Package testcases contains testcases for database. It is used by database
// implementations to test their own implementations with the same testcases.
package testcases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

const notExistID = types.ID("000000000000000000000000")

// run runs fn in one transaction of db and fails the test on error.
func run(t *testing.T, db database.Database, fn func(ctx context.Context, tx database.Transaction) error) {
	t.Helper()
	assert.NoError(t, db.RunInTransaction(context.Background(), fn))
}

// createUser creates a user whose name is unique to the running test.
func createUser(t *testing.T, db database.Database, suffix string) *database.UserInfo {
	t.Helper()

	var info *database.UserInfo
	run(t, db, func(ctx context.Context, tx database.Transaction) error {
		var err error
		info, err = tx.CreateUserInfo(ctx, database.NewUserInfo(fmt.Sprintf("%s-%s", t.Name(), suffix), tx.Now()))
		return err
	})
	return info
}

// createOrganization creates an organization owned by owner.
func createOrganization(t *testing.T, db database.Database, owner *database.UserInfo) *database.OrganizationInfo {
	t.Helper()

	var info *database.OrganizationInfo
	run(t, db, func(ctx context.Context, tx database.Transaction) error {
		var err error
		info, err = tx.CreateOrganizationInfo(ctx, database.NewOrganizationInfo(t.Name(), owner.ID, tx.Now()))
		if err != nil {
			return err
		}

		member, err := database.NewMemberInfo(info.ID, owner.ID, owner.ID, database.Owner, tx.Now())
		if err != nil {
			return err
		}
		_, err = tx.CreateMemberInfo(ctx, member)
		return err
	})
	return info
}

// RunUserInfoTest runs the user store testcases for the given db.
func RunUserInfoTest(t *testing.T, db database.Database) {
	t.Run("create and find user test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		assert.Equal(t, types.UserActive, alice.Status)
		assert.NoError(t, alice.ID.Validate())

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			found, err := tx.FindUserInfoByID(ctx, alice.ID)
			assert.NoError(t, err)
			assert.Equal(t, alice.Username, found.Username)

			found, err = tx.FindUserInfoByName(ctx, alice.Username)
			assert.NoError(t, err)
			assert.Equal(t, alice.ID, found.ID)

			_, err = tx.FindUserInfoByID(ctx, notExistID)
			assert.ErrorIs(t, err, database.ErrUserNotFound)
			return nil
		})
	})

	t.Run("duplicate username test", func(t *testing.T) {
		alice := createUser(t, db, "alice")

		err := db.RunInTransaction(context.Background(), func(ctx context.Context, tx database.Transaction) error {
			_, err := tx.CreateUserInfo(ctx, database.NewUserInfo(alice.Username, tx.Now()))
			return err
		})
		assert.ErrorIs(t, err, database.ErrUserAlreadyExists)
	})

	t.Run("update user status test", func(t *testing.T) {
		alice := createUser(t, db, "alice")

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			updated, err := tx.UpdateUserStatus(ctx, alice.ID, types.UserBanned)
			assert.NoError(t, err)
			assert.ErrorIs(t, updated.EnsureIsActive(), database.ErrUserBanned)

			_, err = tx.UpdateUserStatus(ctx, alice.ID, "deleted")
			assert.ErrorIs(t, err, types.ErrInvalidUserStatus)

			_, err = tx.UpdateUserStatus(ctx, notExistID, types.UserActive)
			assert.ErrorIs(t, err, database.ErrUserNotFound)
			return nil
		})
	})

	t.Run("list users test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			infos, err := tx.ListUserInfos(ctx)
			assert.NoError(t, err)

			var names []string
			for _, info := range infos {
				names = append(names, info.Username)
			}
			assert.Contains(t, names, alice.Username)
			assert.Contains(t, names, bob.Username)
			return nil
		})
	})
}

// RunOrganizationInfoTest runs the organization store testcases for the
// given db.
func RunOrganizationInfoTest(t *testing.T, db database.Database) {
	t.Run("create, rename and list organization test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			renamed, err := tx.UpdateOrganizationName(ctx, org.ID, "Renamed")
			assert.NoError(t, err)
			assert.Equal(t, "Renamed", renamed.Name)
			assert.Equal(t, org.CreatedAt, renamed.CreatedAt)

			infos, err := tx.ListOrganizationInfosByMember(ctx, alice.ID)
			assert.NoError(t, err)
			assert.Len(t, infos, 1)
			assert.Equal(t, org.ID, infos[0].ID)
			return nil
		})
	})

	t.Run("creator must exist test", func(t *testing.T) {
		err := db.RunInTransaction(context.Background(), func(ctx context.Context, tx database.Transaction) error {
			_, err := tx.CreateOrganizationInfo(ctx, database.NewOrganizationInfo("Ghost", notExistID, tx.Now()))
			return err
		})
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})

	t.Run("delete organization cascades test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			now := tx.Now()
			member, err := database.NewMemberInfo(org.ID, bob.ID, alice.ID, database.Member, now)
			assert.NoError(t, err)
			_, err = tx.CreateMemberInfo(ctx, member)
			assert.NoError(t, err)

			_, err = tx.CreateTaskInfo(ctx, database.NewTaskInfo(org.ID, "Plan", "", bob.ID, alice.ID, now))
			assert.NoError(t, err)

			_, err = tx.AppendAuditEventInfo(ctx, database.NewAuditEventInfo(alice.ID, org.ID, types.AuditOrgCreated))
			assert.NoError(t, err)
			return nil
		})

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			deleted, err := tx.DeleteOrganizationInfo(ctx, org.ID)
			assert.NoError(t, err)
			assert.Equal(t, org.ID, deleted.ID)

			members, err := tx.ListMemberInfos(ctx, org.ID)
			assert.NoError(t, err)
			assert.Empty(t, members)

			tasks, err := tx.ListTaskInfos(ctx, org.ID, database.TaskFilter{})
			assert.NoError(t, err)
			assert.Empty(t, tasks)

			events, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{OrganizationID: org.ID})
			assert.NoError(t, err)
			assert.Len(t, events, 1)

			_, err = tx.DeleteOrganizationInfo(ctx, org.ID)
			assert.ErrorIs(t, err, database.ErrOrganizationNotFound)
			return nil
		})
	})
}

// RunMemberInfoTest runs the membership store testcases for the given db.
func RunMemberInfoTest(t *testing.T, db database.Database) {
	t.Run("member lifecycle test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			member, err := database.NewMemberInfo(org.ID, bob.ID, alice.ID, database.Member, tx.Now())
			assert.NoError(t, err)
			created, err := tx.CreateMemberInfo(ctx, member)
			assert.NoError(t, err)
			assert.Equal(t, database.Member, created.Role)

			_, err = tx.CreateMemberInfo(ctx, member)
			assert.ErrorIs(t, err, database.ErrMemberAlreadyExists)

			updated, err := tx.UpdateMemberRole(ctx, org.ID, bob.ID, database.Admin)
			assert.NoError(t, err)
			assert.Equal(t, database.Admin, updated.Role)
			assert.Equal(t, created.JoinedAt, updated.JoinedAt)

			members, err := tx.ListMemberInfos(ctx, org.ID)
			assert.NoError(t, err)
			assert.Len(t, members, 2)

			deleted, err := tx.DeleteMemberInfo(ctx, org.ID, bob.ID)
			assert.NoError(t, err)
			assert.Equal(t, bob.ID, deleted.UserID)

			_, err = tx.FindMemberInfo(ctx, org.ID, bob.ID)
			assert.ErrorIs(t, err, database.ErrMemberNotFound)

			_, err = tx.DeleteMemberInfo(ctx, org.ID, bob.ID)
			assert.ErrorIs(t, err, database.ErrMemberNotFound)
			return nil
		})
	})

	t.Run("member references must exist test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			member, err := database.NewMemberInfo(notExistID, alice.ID, alice.ID, database.Member, tx.Now())
			assert.NoError(t, err)
			_, err = tx.CreateMemberInfo(ctx, member)
			assert.ErrorIs(t, err, database.ErrOrganizationNotFound)

			member, err = database.NewMemberInfo(org.ID, notExistID, alice.ID, database.Member, tx.Now())
			assert.NoError(t, err)
			_, err = tx.CreateMemberInfo(ctx, member)
			assert.ErrorIs(t, err, database.ErrUserNotFound)
			return nil
		})
	})
}

// RunTransactionTest runs the commit and rollback testcases for the given
// db.
func RunTransactionTest(t *testing.T, db database.Database) {
	t.Run("rollback discards every write test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		org := createOrganization(t, db, alice)
		failure := errors.New("audit store is down")

		err := db.RunInTransaction(context.Background(), func(ctx context.Context, tx database.Transaction) error {
			member, err := database.NewMemberInfo(org.ID, bob.ID, alice.ID, database.Member, tx.Now())
			if err != nil {
				return err
			}
			if _, err := tx.CreateMemberInfo(ctx, member); err != nil {
				return err
			}
			if _, err := tx.AppendAuditEventInfo(
				ctx,
				database.NewAuditEventInfo(alice.ID, org.ID, types.AuditOrgMemberHired),
			); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			_, err := tx.FindMemberInfo(ctx, org.ID, bob.ID)
			assert.ErrorIs(t, err, database.ErrMemberNotFound)

			events, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{OrganizationID: org.ID})
			assert.NoError(t, err)
			assert.Empty(t, events)
			return nil
		})
	})

	t.Run("writes are visible inside the transaction test", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		org := createOrganization(t, db, alice)

		run(t, db, func(ctx context.Context, tx database.Transaction) error {
			created, err := tx.CreateTaskInfo(ctx, database.NewTaskInfo(org.ID, "Draft", "", alice.ID, alice.ID, tx.Now()))
			assert.NoError(t, err)

			found, err := tx.FindTaskInfo(ctx, org.ID, created.ID)
			assert.NoError(t, err)
			assert.Equal(t, "Draft", found.Title)
			return nil
		})
	})
}
