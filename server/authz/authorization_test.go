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

package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/backend/database/memory"
)

var roles = []database.MemberRole{database.Owner, database.Admin, database.Member}

func TestCanChangeRole(t *testing.T) {
	t.Run("strictly higher actor test", func(t *testing.T) {
		for _, actor := range roles {
			for _, target := range roles {
				err := authz.CanChangeRole(actor, target, false)
				allowed := (actor == database.Owner || actor == database.Admin) && actor.IsHigherThan(target)
				if allowed {
					assert.NoError(t, err, "%s on %s", actor, target)
				} else {
					assert.ErrorIs(t, err, authz.ErrInsufficientPermissions, "%s on %s", actor, target)
				}
			}
		}
	})

	t.Run("self is refused for every role test", func(t *testing.T) {
		for _, actor := range roles {
			for _, target := range roles {
				assert.ErrorIs(t, authz.CanChangeRole(actor, target, true), authz.ErrCannotActOnSelf)
			}
		}
	})
}

func TestCanAssignRoleOnHire(t *testing.T) {
	tests := []struct {
		actor     database.MemberRole
		requested database.MemberRole
		err       error
	}{
		{database.Owner, database.Owner, authz.ErrCannotAssignRole},
		{database.Owner, database.Admin, nil},
		{database.Owner, database.Member, nil},
		{database.Admin, database.Owner, authz.ErrCannotAssignRole},
		{database.Admin, database.Admin, authz.ErrOnlyOwnerCanAssignRole},
		{database.Admin, database.Member, nil},
		{database.Member, database.Owner, authz.ErrCannotAssignRole},
		{database.Member, database.Admin, authz.ErrInsufficientPermissions},
		{database.Member, database.Member, authz.ErrInsufficientPermissions},
	}

	for _, tt := range tests {
		t.Run(tt.actor.String()+" assigns "+tt.requested.String(), func(t *testing.T) {
			err := authz.CanAssignRoleOnHire(tt.actor, tt.requested)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRoleGates(t *testing.T) {
	assert.NoError(t, authz.CanFire(database.Owner))
	assert.ErrorIs(t, authz.CanFire(database.Admin), authz.ErrInsufficientPermissions)
	assert.ErrorIs(t, authz.CanFire(database.Member), authz.ErrInsufficientPermissions)

	assert.NoError(t, authz.CanInvite(database.Owner))
	assert.ErrorIs(t, authz.CanInvite(database.Admin), authz.ErrInsufficientPermissions)

	assert.NoError(t, authz.CanManageOrganization(database.Admin))
	assert.ErrorIs(t, authz.CanManageOrganization(database.Member), authz.ErrInsufficientPermissions)

	assert.NoError(t, authz.CanViewAudit(database.Owner))
	assert.ErrorIs(t, authz.CanViewAudit(database.Member), authz.ErrInsufficientPermissions)
}

func TestTaskPermissionPolicy(t *testing.T) {
	policy := authz.TaskPermissionPolicy{}

	tests := []struct {
		name    string
		access  authz.TaskAccess
		allowed bool
	}{
		{
			name:    "owner on member's task",
			access:  authz.TaskAccess{ActorID: "o", ActorRole: database.Owner, CreatorID: "m", AssigneeID: "m", AssigneeRole: database.Member},
			allowed: true,
		},
		{
			name:    "owner on admin's task",
			access:  authz.TaskAccess{ActorID: "o", ActorRole: database.Owner, CreatorID: "a", AssigneeID: "a", AssigneeRole: database.Admin},
			allowed: true,
		},
		{
			name:    "admin on another admin's task",
			access:  authz.TaskAccess{ActorID: "a1", ActorRole: database.Admin, CreatorID: "a1", AssigneeID: "a2", AssigneeRole: database.Admin},
			allowed: false,
		},
		{
			name:    "admin on owner's task",
			access:  authz.TaskAccess{ActorID: "a", ActorRole: database.Admin, CreatorID: "a", AssigneeID: "o", AssigneeRole: database.Owner},
			allowed: false,
		},
		{
			name:    "admin on own assignment created by owner",
			access:  authz.TaskAccess{ActorID: "a", ActorRole: database.Admin, CreatorID: "o", AssigneeID: "a", AssigneeRole: database.Admin},
			allowed: true,
		},
		{
			name:    "admin on member's task",
			access:  authz.TaskAccess{ActorID: "a", ActorRole: database.Admin, CreatorID: "o", AssigneeID: "m", AssigneeRole: database.Member},
			allowed: true,
		},
		{
			name:    "member on own task assigned to admin",
			access:  authz.TaskAccess{ActorID: "m", ActorRole: database.Member, CreatorID: "m", AssigneeID: "a", AssigneeRole: database.Admin},
			allowed: true,
		},
		{
			name:    "member on task assigned to them by owner",
			access:  authz.TaskAccess{ActorID: "m", ActorRole: database.Member, CreatorID: "o", AssigneeID: "m", AssigneeRole: database.Member},
			allowed: false,
		},
		{
			name:    "unknown role",
			access:  authz.TaskAccess{ActorID: "x", ActorRole: "guest", CreatorID: "x", AssigneeID: "x", AssigneeRole: database.Member},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanMutate(tt.access)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)
			}
		})
	}
}

func TestFindActorAndTarget(t *testing.T) {
	ctx := context.Background()
	db, err := memory.New()
	assert.NoError(t, err)

	assert.NoError(t, db.RunInTransaction(ctx, func(ctx context.Context, tx database.Transaction) error {
		alice, err := tx.CreateUserInfo(ctx, database.NewUserInfo("alice", tx.Now()))
		assert.NoError(t, err)
		bob, err := tx.CreateUserInfo(ctx, database.NewUserInfo("bob", tx.Now()))
		assert.NoError(t, err)
		org, err := tx.CreateOrganizationInfo(ctx, database.NewOrganizationInfo("Acme", alice.ID, tx.Now()))
		assert.NoError(t, err)
		owner, err := database.NewMemberInfo(org.ID, alice.ID, alice.ID, database.Owner, tx.Now())
		assert.NoError(t, err)
		_, err = tx.CreateMemberInfo(ctx, owner)
		assert.NoError(t, err)

		actor, err := authz.FindActor(ctx, tx, org.ID, alice.ID)
		assert.NoError(t, err)
		assert.Equal(t, database.Owner, actor.Role)

		_, err = authz.FindActor(ctx, tx, org.ID, bob.ID)
		assert.ErrorIs(t, err, authz.ErrActorNotAMember)

		_, err = authz.FindTarget(ctx, tx, org.ID, bob.ID)
		assert.ErrorIs(t, err, authz.ErrTargetNotAMember)
		return nil
	}))
}
