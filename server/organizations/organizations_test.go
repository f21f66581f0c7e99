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

package organizations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/organizations"
	"github.com/yorkie-team/orgkeeper/server/users"
	"github.com/yorkie-team/orgkeeper/test/helper"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	clock := helper.NewClock()
	be := helper.TestBackend(t, clock)
	alice := helper.CreateUser(t, be, "alice")

	t.Run("creator becomes owner test", func(t *testing.T) {
		org, err := organizations.CreateTx(ctx, be, organizations.CreateInput{ActorID: alice.ID, Name: "acme"})
		require.NoError(t, err)
		assert.Equal(t, "acme", org.Name)
		assert.Equal(t, alice.ID, org.CreatedBy)
		assert.Equal(t, clock.Now(), org.CreatedAt)

		owner := helper.FindMember(t, be, org.ID, alice.ID)
		require.NotNil(t, owner)
		assert.Equal(t, database.Owner, owner.Role)
		assert.Equal(t, []types.AuditAction{types.AuditOrgCreated}, helper.AuditActions(t, be, org.ID))
	})

	t.Run("invalid create test", func(t *testing.T) {
		_, err := organizations.CreateTx(ctx, be, organizations.CreateInput{ActorID: alice.ID, Name: "a"})
		assert.ErrorIs(t, err, types.ErrInvalidFields)

		_, err = organizations.CreateTx(ctx, be, organizations.CreateInput{
			ActorID: "000000000000000000000000",
			Name:    "acme",
		})
		assert.ErrorIs(t, err, users.ErrUserDoesNotExist)

		banned := helper.CreateUser(t, be, "banned")
		helper.SetUserStatus(t, be, banned.ID, types.UserBanned)
		_, err = organizations.CreateTx(ctx, be, organizations.CreateInput{ActorID: banned.ID, Name: "acme"})
		assert.ErrorIs(t, err, database.ErrUserBanned)
	})

	t.Run("list by user test", func(t *testing.T) {
		orgs, err := organizations.ListByUserTx(ctx, be, alice.ID)
		require.NoError(t, err)
		assert.Len(t, orgs, 1)
	})
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	clock := helper.NewClock()
	be := helper.TestBackend(t, clock)
	owner := helper.CreateUser(t, be, "owner")
	admin := helper.CreateUser(t, be, "admin")
	member := helper.CreateUser(t, be, "member")
	org := helper.CreateOrganization(t, be, owner)
	helper.AddMember(t, be, org.ID, admin, database.Admin)
	helper.AddMember(t, be, org.ID, member, database.Member)

	t.Run("owner and admin rename test", func(t *testing.T) {
		clock.Advance(time.Minute)
		renamed, err := organizations.RenameTx(ctx, be, organizations.RenameInput{
			ActorID:        admin.ID,
			OrganizationID: org.ID,
			Name:           "renamed",
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", renamed.Name)
		assert.Equal(t, clock.Now(), renamed.UpdatedAt)

		_, err = organizations.RenameTx(ctx, be, organizations.RenameInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			Name:           "renamed again",
		})
		require.NoError(t, err)
		assert.Len(t, helper.AuditActions(t, be, org.ID), 2)
	})

	t.Run("member cannot rename test", func(t *testing.T) {
		_, err := organizations.RenameTx(ctx, be, organizations.RenameInput{
			ActorID:        member.ID,
			OrganizationID: org.ID,
			Name:           "mine",
		})
		assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)

		got, err := organizations.GetTx(ctx, be, organizations.GetInput{ActorID: member.ID, OrganizationID: org.ID})
		require.NoError(t, err)
		assert.Equal(t, "renamed again", got.Name)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("sole owner deletes test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		org := helper.CreateOrganization(t, be, owner)

		deleted, err := organizations.DeleteTx(ctx, be, organizations.DeleteInput{ActorID: owner.ID, OrganizationID: org.ID})
		require.NoError(t, err)
		assert.Equal(t, org.ID, deleted.ID)
		assert.Nil(t, helper.FindMember(t, be, org.ID, owner.ID))
		assert.Equal(t, []types.AuditAction{types.AuditOrgDeleted}, helper.AuditActions(t, be, org.ID))

		_, err = organizations.DeleteTx(ctx, be, organizations.DeleteInput{ActorID: owner.ID, OrganizationID: org.ID})
		assert.ErrorIs(t, err, authz.ErrActorNotAMember)
	})

	t.Run("multiple members test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		bob := helper.CreateUser(t, be, "bob")
		org := helper.CreateOrganization(t, be, owner)
		helper.AddMember(t, be, org.ID, bob, database.Member)

		_, err := organizations.DeleteTx(ctx, be, organizations.DeleteInput{ActorID: owner.ID, OrganizationID: org.ID})
		assert.ErrorIs(t, err, organizations.ErrCannotDeleteOrganization)
		assert.NotNil(t, helper.FindMember(t, be, org.ID, owner.ID))
		assert.Empty(t, helper.AuditActions(t, be, org.ID))
	})

	t.Run("sole member not owner test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		admin := helper.CreateUser(t, be, "admin")
		org := helper.CreateOrganization(t, be, owner)
		helper.AddMember(t, be, org.ID, admin, database.Admin)
		helper.Run(t, be, func(ctx context.Context, tx database.Transaction) error {
			_, err := tx.DeleteMemberInfo(ctx, org.ID, owner.ID)
			return err
		})

		_, err := organizations.DeleteTx(ctx, be, organizations.DeleteInput{ActorID: admin.ID, OrganizationID: org.ID})
		assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)
	})
}
