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

package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

func TestMemberRole(t *testing.T) {
	t.Run("rank test", func(t *testing.T) {
		assert.Equal(t, 2, database.Owner.Rank())
		assert.Equal(t, 1, database.Admin.Rank())
		assert.Equal(t, 0, database.Member.Rank())

		assert.True(t, database.Owner.IsHigherThan(database.Admin))
		assert.True(t, database.Admin.IsHigherThan(database.Member))
		assert.False(t, database.Admin.IsHigherThan(database.Admin))
		assert.False(t, database.Member.IsHigherThan(database.Owner))

		assert.True(t, database.Admin.IsAtLeast(database.Admin))
		assert.False(t, database.Member.IsAtLeast(database.Admin))
	})

	t.Run("parse test", func(t *testing.T) {
		role, err := database.NewMemberRole("admin")
		assert.NoError(t, err)
		assert.Equal(t, database.Admin, role)

		_, err = database.NewMemberRole("OWNER")
		assert.ErrorIs(t, err, database.ErrInvalidMemberRole)
	})
}

func TestMemberInfo(t *testing.T) {
	now := time.Now()
	info, err := database.NewMemberInfo("org", "bob", "alice", database.Member, now)
	assert.NoError(t, err)
	assert.Equal(t, now, info.JoinedAt)

	member := info.ToMember()
	assert.Equal(t, "member", member.Role)
	assert.Equal(t, types.ID("alice"), member.InvitedBy)

	_, err = database.NewMemberInfo("org", "bob", "alice", "guest", now)
	assert.ErrorIs(t, err, database.ErrInvalidMemberRole)
}

func TestUserInfo(t *testing.T) {
	info := database.NewUserInfo("alice", time.Now())
	assert.NoError(t, info.EnsureIsActive())

	info.Status = types.UserSuspended
	assert.ErrorIs(t, info.EnsureIsActive(), database.ErrUserSuspended)

	info.Status = types.UserBanned
	assert.ErrorIs(t, info.EnsureIsActive(), database.ErrUserBanned)
}

func TestInvitationInfo(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour

	t.Run("effective status test", func(t *testing.T) {
		info, err := database.NewInvitationInfo("org", "bob", "alice", database.Admin, now, ttl)
		assert.NoError(t, err)
		assert.Equal(t, types.InvitationPending, info.Status)
		assert.Equal(t, now.Add(ttl), info.ExpiredAt)

		assert.Equal(t, types.InvitationPending, info.EffectiveStatus(now.Add(ttl-time.Second)))
		assert.Equal(t, types.InvitationExpired, info.EffectiveStatus(now.Add(ttl)))
		assert.Equal(t, types.InvitationExpired, info.ToInvitation(now.Add(2*ttl)).Status)

		info.SetStatus(types.InvitationAccepted, now)
		assert.Equal(t, types.InvitationAccepted, info.EffectiveStatus(now.Add(2*ttl)))
	})

	t.Run("set status is unguarded test", func(t *testing.T) {
		info, err := database.NewInvitationInfo("org", "bob", "alice", database.Member, now, ttl)
		assert.NoError(t, err)

		info.SetStatus(types.InvitationRejected, now)
		info.SetStatus(types.InvitationPending, now.Add(time.Minute))
		assert.Equal(t, types.InvitationPending, info.Status)
		assert.Equal(t, now.Add(time.Minute), info.UpdatedAt)
	})

	t.Run("invalid role test", func(t *testing.T) {
		_, err := database.NewInvitationInfo("org", "bob", "alice", "guest", now, ttl)
		assert.ErrorIs(t, err, database.ErrInvalidMemberRole)
	})
}
