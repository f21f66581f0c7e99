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

package members_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/members"
	"github.com/yorkie-team/orgkeeper/server/users"
	"github.com/yorkie-team/orgkeeper/test/helper"
)

func TestHire(t *testing.T) {
	ctx := context.Background()

	t.Run("owner hires member test", func(t *testing.T) {
		clock := helper.NewClock()
		be := helper.TestBackend(t, clock)
		owner := helper.CreateUser(t, be, "owner")
		bob := helper.CreateUser(t, be, "bob")
		org := helper.CreateOrganization(t, be, owner)

		member, err := members.HireTx(ctx, be, members.HireInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			TargetID:       bob.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, database.Member.String(), member.Role)
		assert.Equal(t, clock.Now(), member.JoinedAt)
		assert.Equal(t, owner.ID, member.InvitedBy)

		actions := helper.AuditActions(t, be, org.ID)
		assert.Equal(t, []types.AuditAction{types.AuditOrgMemberHired}, actions)
	})

	t.Run("rejected hire test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		admin := helper.CreateUser(t, be, "admin")
		plain := helper.CreateUser(t, be, "member")
		bob := helper.CreateUser(t, be, "bob")
		banned := helper.CreateUser(t, be, "banned")
		suspended := helper.CreateUser(t, be, "suspended")
		stranger := helper.CreateUser(t, be, "stranger")
		org := helper.CreateOrganization(t, be, owner)
		helper.AddMember(t, be, org.ID, admin, database.Admin)
		helper.AddMember(t, be, org.ID, plain, database.Member)
		helper.SetUserStatus(t, be, banned.ID, types.UserBanned)
		helper.SetUserStatus(t, be, suspended.ID, types.UserSuspended)

		tests := []struct {
			name     string
			actor    types.ID
			target   types.ID
			role     database.MemberRole
			expected error
		}{
			{"self", owner.ID, owner.ID, database.Member, members.ErrCannotPerformActionOnYourself},
			{"admin assigns admin", admin.ID, bob.ID, database.Admin, authz.ErrOnlyOwnerCanAssignRole},
			{"owner assigns owner", owner.ID, bob.ID, database.Owner, authz.ErrCannotAssignRole},
			{"member hires", plain.ID, bob.ID, database.Member, authz.ErrInsufficientPermissions},
			{"actor not a member", stranger.ID, bob.ID, database.Member, authz.ErrActorNotAMember},
			{"unknown target", owner.ID, "000000000000000000000000", database.Member, users.ErrUserDoesNotExist},
			{"banned target", owner.ID, banned.ID, database.Member, database.ErrUserBanned},
			{"suspended target", owner.ID, suspended.ID, database.Member, database.ErrUserSuspended},
			{"already a member", owner.ID, admin.ID, database.Member, database.ErrMemberAlreadyExists},
			{"unknown role", owner.ID, bob.ID, "guest", database.ErrInvalidMemberRole},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := members.HireTx(ctx, be, members.HireInput{
					ActorID:        test.actor,
					OrganizationID: org.ID,
					TargetID:       test.target,
					Role:           test.role,
				})
				assert.ErrorIs(t, err, test.expected)
			})
		}

		assert.Nil(t, helper.FindMember(t, be, org.ID, bob.ID))
		assert.Empty(t, helper.AuditActions(t, be, org.ID))
	})

	t.Run("owner hires admin and admin hires member test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		admin := helper.CreateUser(t, be, "admin")
		bob := helper.CreateUser(t, be, "bob")
		org := helper.CreateOrganization(t, be, owner)

		_, err := members.HireTx(ctx, be, members.HireInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			TargetID:       admin.ID,
			Role:           database.Admin,
		})
		require.NoError(t, err)

		_, err = members.HireTx(ctx, be, members.HireInput{
			ActorID:        admin.ID,
			OrganizationID: org.ID,
			TargetID:       bob.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, database.Member, helper.FindMember(t, be, org.ID, bob.ID).Role)
		assert.Len(t, helper.AuditActions(t, be, org.ID), 2)
	})
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actorRole  database.MemberRole
		targetRole database.MemberRole
		newRole    database.MemberRole
		expected   error
	}{
		{"owner promotes member", database.Owner, database.Member, database.Admin, nil},
		{"owner demotes admin", database.Owner, database.Admin, database.Member, nil},
		{"admin keeps member", database.Admin, database.Member, database.Member, nil},
		{"admin promotes member", database.Admin, database.Member, database.Admin, authz.ErrOnlyOwnerCanAssignRole},
		{"admin demotes admin", database.Admin, database.Admin, database.Member, authz.ErrInsufficientPermissions},
		{"admin demotes owner", database.Admin, database.Owner, database.Member, authz.ErrInsufficientPermissions},
		{"member promotes member", database.Member, database.Member, database.Admin, authz.ErrInsufficientPermissions},
		{"owner makes owner", database.Owner, database.Admin, database.Owner, authz.ErrCannotAssignRole},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be := helper.TestBackend(t, helper.NewClock())
			founder := helper.CreateUser(t, be, "founder")
			actor := helper.CreateUser(t, be, "actor")
			target := helper.CreateUser(t, be, "target")
			org := helper.CreateOrganization(t, be, founder)
			if test.actorRole == database.Owner {
				actor = founder
			} else {
				helper.AddMember(t, be, org.ID, actor, test.actorRole)
			}
			helper.AddMember(t, be, org.ID, target, test.targetRole)

			updated, err := members.ChangeRoleTx(ctx, be, members.ChangeRoleInput{
				ActorID:        actor.ID,
				TargetID:       target.ID,
				OrganizationID: org.ID,
				NewRole:        test.newRole,
			})
			if test.expected != nil {
				assert.ErrorIs(t, err, test.expected)
				assert.Equal(t, test.targetRole, helper.FindMember(t, be, org.ID, target.ID).Role)
				assert.Empty(t, helper.AuditActions(t, be, org.ID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.newRole.String(), updated.Role)
			assert.Equal(t, []types.AuditAction{types.AuditOrgMemberRoleChanged}, helper.AuditActions(t, be, org.ID))
		})
	}

	t.Run("self change test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		org := helper.CreateOrganization(t, be, owner)

		for _, role := range []database.MemberRole{database.Owner, database.Admin, database.Member} {
			_, err := members.ChangeRoleTx(ctx, be, members.ChangeRoleInput{
				ActorID:        owner.ID,
				TargetID:       owner.ID,
				OrganizationID: org.ID,
				NewRole:        role,
			})
			assert.ErrorIs(t, err, members.ErrCannotPerformActionOnYourself)
		}
	})

	t.Run("target not a member test", func(t *testing.T) {
		be := helper.TestBackend(t, helper.NewClock())
		owner := helper.CreateUser(t, be, "owner")
		bob := helper.CreateUser(t, be, "bob")
		org := helper.CreateOrganization(t, be, owner)

		_, err := members.ChangeRoleTx(ctx, be, members.ChangeRoleInput{
			ActorID:        owner.ID,
			TargetID:       bob.ID,
			OrganizationID: org.ID,
			NewRole:        database.Admin,
		})
		assert.ErrorIs(t, err, authz.ErrTargetNotAMember)
	})
}

func TestFire(t *testing.T) {
	ctx := context.Background()
	be := helper.TestBackend(t, helper.NewClock())
	owner := helper.CreateUser(t, be, "owner")
	admin := helper.CreateUser(t, be, "admin")
	bob := helper.CreateUser(t, be, "bob")
	stranger := helper.CreateUser(t, be, "stranger")
	org := helper.CreateOrganization(t, be, owner)
	helper.AddMember(t, be, org.ID, admin, database.Admin)
	helper.AddMember(t, be, org.ID, bob, database.Member)

	t.Run("only owner fires test", func(t *testing.T) {
		_, err := members.FireTx(ctx, be, members.FireInput{ActorID: admin.ID, OrganizationID: org.ID, TargetID: bob.ID})
		assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)

		_, err = members.FireTx(ctx, be, members.FireInput{ActorID: owner.ID, OrganizationID: org.ID, TargetID: owner.ID})
		assert.ErrorIs(t, err, members.ErrCannotPerformActionOnYourself)

		_, err = members.FireTx(ctx, be, members.FireInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			TargetID:       stranger.ID,
		})
		assert.ErrorIs(t, err, authz.ErrTargetNotAMember)
		assert.Empty(t, helper.AuditActions(t, be, org.ID))
	})

	t.Run("owner fires member test", func(t *testing.T) {
		fired, err := members.FireTx(ctx, be, members.FireInput{ActorID: owner.ID, OrganizationID: org.ID, TargetID: bob.ID})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, fired.UserID)
		assert.Nil(t, helper.FindMember(t, be, org.ID, bob.ID))
		assert.Equal(t, []types.AuditAction{types.AuditOrgMemberFired}, helper.AuditActions(t, be, org.ID))
	})

	t.Run("list test", func(t *testing.T) {
		list, err := members.ListTx(ctx, be, members.ListInput{ActorID: admin.ID, OrganizationID: org.ID})
		require.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, owner.ID, list[0].UserID)

		_, err = members.ListTx(ctx, be, members.ListInput{ActorID: bob.ID, OrganizationID: org.ID})
		assert.ErrorIs(t, err, authz.ErrActorNotAMember)
	})
}

func TestAuditAppendFailure(t *testing.T) {
	ctx := context.Background()
	be := helper.TestBackend(t, helper.NewClock())
	owner := helper.CreateUser(t, be, "owner")
	bob := helper.CreateUser(t, be, "bob")
	org := helper.CreateOrganization(t, be, owner)

	faulty := &helper.FaultyDatabase{Database: be.DB, AppendErr: database.ErrPersistence}
	be.DB = faulty

	_, err := members.HireTx(ctx, be, members.HireInput{ActorID: owner.ID, OrganizationID: org.ID, TargetID: bob.ID})
	assert.ErrorIs(t, err, database.ErrPersistence)
	assert.Equal(t, 1, faulty.Appends)
	assert.Nil(t, helper.FindMember(t, be, org.ID, bob.ID))
}
