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

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/test/helper"
)

var errBoom = errors.FailedPrecond("boom").WithCode("ErrBoom")

type renameInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	Name           string
	Fail           bool
}

// rename writes the new name and then optionally fails, so a rolled back
// write is observable.
func rename(ctx context.Context, tx database.Transaction, in renameInput) (*database.OrganizationInfo, error) {
	info, err := tx.UpdateOrganizationName(ctx, in.OrganizationID, in.Name)
	if err != nil {
		return nil, err
	}
	if in.Fail {
		return nil, errBoom
	}
	return info, nil
}

func renamed(in renameInput, out *database.OrganizationInfo) *database.AuditEventInfo {
	return database.NewAuditEventInfo(in.ActorID, out.ID, types.AuditOrgRenamed)
}

func organizationName(t *testing.T, db database.Database, id types.ID) string {
	t.Helper()

	var name string
	require.NoError(t, db.RunInTransaction(context.Background(), func(ctx context.Context, tx database.Transaction) error {
		info, err := tx.FindOrganizationInfoByID(ctx, id)
		if err != nil {
			return err
		}
		name = info.Name
		return nil
	}))
	return name
}

func TestWith(t *testing.T) {
	ctx := context.Background()

	t.Run("success appends exactly one event test", func(t *testing.T) {
		clock := helper.NewClock()
		be := helper.TestBackend(t, clock)
		alice := helper.CreateUser(t, be, "alice")
		org := helper.CreateOrganization(t, be, alice)

		out, err := audit.Execute(ctx, be, "rename", audit.With(rename, renamed), renameInput{
			ActorID:        alice.ID,
			OrganizationID: org.ID,
			Name:           "renamed",
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", out.Name)
		assert.Equal(t, []types.AuditAction{types.AuditOrgRenamed}, helper.AuditActions(t, be, org.ID))
		assert.Equal(t, "renamed", organizationName(t, be.DB, org.ID))
	})

	t.Run("failure appends nothing and rolls back test", func(t *testing.T) {
		clock := helper.NewClock()
		be := helper.TestBackend(t, clock)
		alice := helper.CreateUser(t, be, "alice")
		org := helper.CreateOrganization(t, be, alice)

		faulty := &helper.FaultyDatabase{Database: be.DB}
		be.DB = faulty

		_, err := audit.Execute(ctx, be, "rename", audit.With(rename, renamed), renameInput{
			ActorID:        alice.ID,
			OrganizationID: org.ID,
			Name:           "renamed",
			Fail:           true,
		})
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, faulty.Appends)
		assert.Empty(t, helper.AuditActions(t, be, org.ID))
		assert.Equal(t, "org", organizationName(t, be.DB, org.ID))
	})

	t.Run("append failure propagates and rolls back test", func(t *testing.T) {
		clock := helper.NewClock()
		be := helper.TestBackend(t, clock)
		alice := helper.CreateUser(t, be, "alice")
		org := helper.CreateOrganization(t, be, alice)

		errAppend := database.Persistence("append audit event", context.DeadlineExceeded)
		faulty := &helper.FaultyDatabase{Database: be.DB, AppendErr: errAppend}
		be.DB = faulty

		_, err := audit.Execute(ctx, be, "rename", audit.With(rename, renamed), renameInput{
			ActorID:        alice.ID,
			OrganizationID: org.ID,
			Name:           "renamed",
		})
		assert.ErrorIs(t, err, database.ErrPersistence)
		assert.Equal(t, 1, faulty.Appends)
		assert.Empty(t, helper.AuditActions(t, be, org.ID))
		assert.Equal(t, "org", organizationName(t, be.DB, org.ID))
	})

	t.Run("missing event test", func(t *testing.T) {
		clock := helper.NewClock()
		be := helper.TestBackend(t, clock)
		alice := helper.CreateUser(t, be, "alice")
		org := helper.CreateOrganization(t, be, alice)

		none := func(renameInput, *database.OrganizationInfo) *database.AuditEventInfo { return nil }
		_, err := audit.Execute(ctx, be, "rename", audit.With(rename, none), renameInput{
			ActorID:        alice.ID,
			OrganizationID: org.ID,
			Name:           "renamed",
		})
		assert.ErrorIs(t, err, audit.ErrMissingAuditEvent)
		assert.Equal(t, "org", organizationName(t, be.DB, org.ID))
	})

	t.Run("event is stamped with transaction time test", func(t *testing.T) {
		clock := helper.NewClock()
		be := helper.TestBackend(t, clock)
		alice := helper.CreateUser(t, be, "alice")
		org := helper.CreateOrganization(t, be, alice)
		clock.Advance(time.Hour)

		_, err := audit.Execute(ctx, be, "rename", audit.With(rename, renamed), renameInput{
			ActorID:        alice.ID,
			OrganizationID: org.ID,
			Name:           "renamed",
		})
		require.NoError(t, err)

		events, err := audit.ListTx(ctx, be, audit.ListInput{ActorID: alice.ID, OrganizationID: org.ID})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, clock.Now(), events[0].CreatedAt)
		assert.Equal(t, alice.ID, events[0].ActorID)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	clock := helper.NewClock()
	be := helper.TestBackend(t, clock)

	owner := helper.CreateUser(t, be, "owner")
	admin := helper.CreateUser(t, be, "admin")
	member := helper.CreateUser(t, be, "member")
	stranger := helper.CreateUser(t, be, "stranger")
	org := helper.CreateOrganization(t, be, owner)
	helper.AddMember(t, be, org.ID, admin, database.Admin)
	helper.AddMember(t, be, org.ID, member, database.Member)

	for _, name := range []string{"first", "second"} {
		clock.Advance(time.Minute)
		_, err := audit.Execute(ctx, be, "rename", audit.With(rename, renamed), renameInput{
			ActorID:        admin.ID,
			OrganizationID: org.ID,
			Name:           name,
		})
		require.NoError(t, err)
	}

	t.Run("owner and admin can read test", func(t *testing.T) {
		for _, actor := range []*database.UserInfo{owner, admin} {
			events, err := audit.ListTx(ctx, be, audit.ListInput{ActorID: actor.ID, OrganizationID: org.ID})
			assert.NoError(t, err)
			assert.Len(t, events, 2)
		}
	})

	t.Run("member cannot read test", func(t *testing.T) {
		_, err := audit.ListTx(ctx, be, audit.ListInput{ActorID: member.ID, OrganizationID: org.ID})
		assert.ErrorIs(t, err, authz.ErrInsufficientPermissions)

		_, err = audit.ListTx(ctx, be, audit.ListInput{ActorID: stranger.ID, OrganizationID: org.ID})
		assert.ErrorIs(t, err, authz.ErrActorNotAMember)
	})

	t.Run("filter test", func(t *testing.T) {
		events, err := audit.ListTx(ctx, be, audit.ListInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			Filter:         database.AuditEventFilter{Limit: 1},
		})
		assert.NoError(t, err)
		assert.Len(t, events, 1)

		events, err = audit.ListTx(ctx, be, audit.ListInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			Filter:         database.AuditEventFilter{ActorID: owner.ID},
		})
		assert.NoError(t, err)
		assert.Empty(t, events)

		_, err = audit.ListTx(ctx, be, audit.ListInput{
			ActorID:        owner.ID,
			OrganizationID: org.ID,
			Filter:         database.AuditEventFilter{Action: "ORG_EXPLODED"},
		})
		assert.ErrorIs(t, err, types.ErrInvalidAuditAction)
	})
}
