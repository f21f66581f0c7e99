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

package invitations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/invitations"
	"github.com/yorkie-team/orgkeeper/server/users"
	"github.com/yorkie-team/orgkeeper/test/helper"
)

type fixture struct {
	be    *backend.Backend
	clock *helper.Clock
	org   *database.OrganizationInfo
	owner *database.UserInfo
	admin *database.UserInfo
	bob   *database.UserInfo
	carol *database.UserInfo
}

func newFixture(t *testing.T) *fixture {
	clock := helper.NewClock()
	be := helper.TestBackend(t, clock)
	f := &fixture{
		be:    be,
		clock: clock,
		owner: helper.CreateUser(t, be, "owner"),
		admin: helper.CreateUser(t, be, "admin"),
		bob:   helper.CreateUser(t, be, "bob"),
		carol: helper.CreateUser(t, be, "carol"),
	}
	f.org = helper.CreateOrganization(t, be, f.owner)
	helper.AddMember(t, be, f.org.ID, f.admin, database.Admin)
	return f
}

func (f *fixture) invite(t *testing.T, user *database.UserInfo, role database.MemberRole) *types.Invitation {
	t.Helper()

	invitation, err := invitations.CreateTx(context.Background(), f.be, invitations.CreateInput{
		ActorID:        f.owner.ID,
		OrganizationID: f.org.ID,
		InvitedUserID:  user.ID,
		Role:           role,
	})
	require.NoError(t, err)
	return invitation
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner invites test", func(t *testing.T) {
		f := newFixture(t)
		invitation := f.invite(t, f.bob, "")
		assert.Equal(t, types.InvitationPending, invitation.Status)
		assert.Equal(t, database.Member.String(), invitation.AssignedRole)
		assert.Equal(t, f.owner.ID, invitation.InvitedByUserID)
		assert.Equal(t, f.clock.Now().Add(helper.InvitationTTL), invitation.ExpiredAt)
		assert.Equal(t, []types.AuditAction{types.AuditInvitationCreated}, helper.AuditActions(t, f.be, f.org.ID))
	})

	t.Run("rejected create test", func(t *testing.T) {
		f := newFixture(t)
		banned := helper.CreateUser(t, f.be, "banned")
		stranger := helper.CreateUser(t, f.be, "stranger")
		helper.SetUserStatus(t, f.be, banned.ID, types.UserBanned)
		f.invite(t, f.carol, database.Admin)

		tests := []struct {
			name     string
			actor    types.ID
			invited  types.ID
			role     database.MemberRole
			expected error
		}{
			{"owner role", f.owner.ID, f.bob.ID, database.Owner, invitations.ErrInvalidRoleInInvitation},
			{"admin invites", f.admin.ID, f.bob.ID, database.Member, authz.ErrInsufficientPermissions},
			{"stranger invites", stranger.ID, f.bob.ID, database.Member, authz.ErrActorNotAMember},
			{"unknown user", f.owner.ID, "000000000000000000000000", database.Member, users.ErrUserDoesNotExist},
			{"banned user", f.owner.ID, banned.ID, database.Member, database.ErrUserBanned},
			{"already member", f.owner.ID, f.admin.ID, database.Member, invitations.ErrUserAlreadyMember},
			{"pending exists", f.owner.ID, f.carol.ID, database.Member, database.ErrPendingInvitationExists},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := invitations.CreateTx(ctx, f.be, invitations.CreateInput{
					ActorID:        test.actor,
					OrganizationID: f.org.ID,
					InvitedUserID:  test.invited,
					Role:           test.role,
				})
				assert.ErrorIs(t, err, test.expected)
			})
		}
		assert.Len(t, helper.AuditActions(t, f.be, f.org.ID), 1)
	})

	t.Run("stale pending invitation is replaced test", func(t *testing.T) {
		f := newFixture(t)
		stale := f.invite(t, f.bob, database.Member)

		f.clock.Advance(helper.InvitationTTL)
		fresh := f.invite(t, f.bob, database.Admin)
		assert.NotEqual(t, stale.ID, fresh.ID)

		list, err := invitations.ListTx(ctx, f.be, invitations.ListInput{ActorID: f.bob.ID})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, types.InvitationExpired, list[0].Status)
		assert.Equal(t, types.InvitationPending, list[1].Status)
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("accept test", func(t *testing.T) {
		f := newFixture(t)
		invitation := f.invite(t, f.bob, database.Admin)

		accepted, err := invitations.AcceptTx(ctx, f.be, invitations.RespondInput{
			ActorID:      f.bob.ID,
			InvitationID: invitation.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, types.InvitationAccepted, accepted.Status)

		member := helper.FindMember(t, f.be, f.org.ID, f.bob.ID)
		require.NotNil(t, member)
		assert.Equal(t, database.Admin, member.Role)
		assert.Equal(t, f.owner.ID, member.InvitedBy)

		_, err = invitations.AcceptTx(ctx, f.be, invitations.RespondInput{ActorID: f.bob.ID, InvitationID: invitation.ID})
		assert.ErrorIs(t, err, invitations.ErrInvitationNotPending)

		assert.Equal(t, []types.AuditAction{
			types.AuditInvitationCreated,
			types.AuditInvitationAccepted,
		}, helper.AuditActions(t, f.be, f.org.ID))
	})

	t.Run("reject test", func(t *testing.T) {
		f := newFixture(t)
		invitation := f.invite(t, f.bob, database.Member)

		_, err := invitations.RejectTx(ctx, f.be, invitations.RespondInput{ActorID: f.carol.ID, InvitationID: invitation.ID})
		assert.ErrorIs(t, err, invitations.ErrInvitationOfDiffUser)

		rejected, err := invitations.RejectTx(ctx, f.be, invitations.RespondInput{
			ActorID:      f.bob.ID,
			InvitationID: invitation.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, types.InvitationRejected, rejected.Status)
		assert.Nil(t, helper.FindMember(t, f.be, f.org.ID, f.bob.ID))
	})

	t.Run("expired invitation test", func(t *testing.T) {
		f := newFixture(t)
		invitation := f.invite(t, f.bob, database.Member)

		f.clock.Advance(helper.InvitationTTL)
		_, err := invitations.AcceptTx(ctx, f.be, invitations.RespondInput{ActorID: f.bob.ID, InvitationID: invitation.ID})
		assert.ErrorIs(t, err, invitations.ErrInvitationExpired)
		assert.Nil(t, helper.FindMember(t, f.be, f.org.ID, f.bob.ID))

		list, err := invitations.ListTx(ctx, f.be, invitations.ListInput{
			ActorID: f.owner.ID,
			Filter:  database.InvitationFilter{OrganizationID: f.org.ID, Status: types.InvitationExpired},
		})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("respond rules test", func(t *testing.T) {
		f := newFixture(t)
		invitation := f.invite(t, f.bob, database.Member)

		_, err := invitations.AcceptTx(ctx, f.be, invitations.RespondInput{
			ActorID:      f.bob.ID,
			InvitationID: "000000000000000000000000",
		})
		assert.ErrorIs(t, err, database.ErrInvitationNotFound)

		helper.SetUserStatus(t, f.be, f.bob.ID, types.UserSuspended)
		_, err = invitations.AcceptTx(ctx, f.be, invitations.RespondInput{ActorID: f.bob.ID, InvitationID: invitation.ID})
		assert.ErrorIs(t, err, database.ErrUserSuspended)

		helper.SetUserStatus(t, f.be, f.bob.ID, types.UserActive)
		helper.AddMember(t, f.be, f.org.ID, f.bob, database.Member)
		_, err = invitations.AcceptTx(ctx, f.be, invitations.RespondInput{ActorID: f.bob.ID, InvitationID: invitation.ID})
		assert.ErrorIs(t, err, invitations.ErrUserAlreadyMember)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	invitation := f.invite(t, f.bob, database.Member)

	_, err := invitations.CancelTx(ctx, f.be, invitations.CancelInput{ActorID: f.admin.ID, InvitationID: invitation.ID})
	assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)

	_, err = invitations.CancelTx(ctx, f.be, invitations.CancelInput{ActorID: f.bob.ID, InvitationID: invitation.ID})
	assert.ErrorIs(t, err, authz.ErrActorNotAMember)

	canceled, err := invitations.CancelTx(ctx, f.be, invitations.CancelInput{ActorID: f.owner.ID, InvitationID: invitation.ID})
	require.NoError(t, err)
	assert.Equal(t, types.InvitationCanceled, canceled.Status)

	_, err = invitations.AcceptTx(ctx, f.be, invitations.RespondInput{ActorID: f.bob.ID, InvitationID: invitation.ID})
	assert.ErrorIs(t, err, invitations.ErrInvitationNotPending)

	again := f.invite(t, f.bob, database.Member)
	assert.Equal(t, types.InvitationPending, again.Status)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.invite(t, f.bob, database.Member)
	f.clock.Advance(time.Minute)
	f.invite(t, f.carol, database.Admin)

	list, err := invitations.ListTx(ctx, f.be, invitations.ListInput{
		ActorID: f.admin.ID,
		Filter:  database.InvitationFilter{OrganizationID: f.org.ID},
	})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = invitations.ListTx(ctx, f.be, invitations.ListInput{ActorID: f.carol.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.carol.ID, list[0].InvitedUserID)

	list, err = invitations.ListTx(ctx, f.be, invitations.ListInput{
		ActorID: f.carol.ID,
		Filter:  database.InvitationFilter{OrganizationID: f.org.ID, InvitedUserID: f.carol.ID},
	})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = invitations.ListTx(ctx, f.be, invitations.ListInput{
		ActorID: f.carol.ID,
		Filter:  database.InvitationFilter{OrganizationID: f.org.ID},
	})
	assert.ErrorIs(t, err, authz.ErrActorNotAMember)
}
