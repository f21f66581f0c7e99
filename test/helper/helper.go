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

// Package helper provides helpers for tests that run use cases against an
// in-memory backend.
package helper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	gotime "time"

	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/backend/housekeeping"
	"github.com/yorkie-team/orgkeeper/server/profiling/prometheus"
)

// InvitationTTL is the invitation TTL of test backends.
const InvitationTTL = 7 * 24 * gotime.Hour

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now gotime.Time
}

// NewClock creates a clock stopped at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: gotime.Date(2026, gotime.January, 1, 9, 0, 0, 0, gotime.UTC)}
}

// Now returns the current time of the clock.
func (c *Clock) Now() gotime.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d gotime.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestBackend creates a backend over a fresh in-memory database stamped by
// clock. It is shut down when the test ends.
func TestBackend(t testing.TB, clock *Clock) *backend.Backend {
	t.Helper()

	metrics, err := prometheus.NewMetrics()
	require.NoError(t, err)

	be, err := backend.New(
		&backend.Config{InvitationTTL: InvitationTTL.String(), Hostname: "test"},
		nil,
		&housekeeping.Config{Interval: "1h", InvitationExpiryLimit: 10},
		metrics,
		backend.WithClock(clock.Now),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, be.Shutdown())
	})

	return be
}

// Run runs fn in one transaction of the backend and fails the test on error.
func Run(t testing.TB, be *backend.Backend, fn func(ctx context.Context, tx database.Transaction) error) {
	t.Helper()
	require.NoError(t, be.DB.RunInTransaction(context.Background(), fn))
}

// CreateUser stores an active user named after the running test.
func CreateUser(t testing.TB, be *backend.Backend, name string) *database.UserInfo {
	t.Helper()

	var info *database.UserInfo
	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		var err error
		info, err = tx.CreateUserInfo(ctx, database.NewUserInfo(fmt.Sprintf("%s/%s", t.Name(), name), tx.Now()))
		return err
	})
	return info
}

// SetUserStatus changes the status of the user.
func SetUserStatus(t testing.TB, be *backend.Backend, userID types.ID, status types.UserStatus) {
	t.Helper()

	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		_, err := tx.UpdateUserStatus(ctx, userID, status)
		return err
	})
}

// CreateOrganization stores an organization with owner as its OWNER.
func CreateOrganization(t testing.TB, be *backend.Backend, owner *database.UserInfo) *database.OrganizationInfo {
	t.Helper()

	var info *database.OrganizationInfo
	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		var err error
		info, err = tx.CreateOrganizationInfo(ctx, database.NewOrganizationInfo("org", owner.ID, tx.Now()))
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

// AddMember stores a membership of the user in the organization.
func AddMember(t testing.TB, be *backend.Backend, orgID types.ID, user *database.UserInfo, role database.MemberRole) {
	t.Helper()

	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		member, err := database.NewMemberInfo(orgID, user.ID, user.ID, role, tx.Now())
		if err != nil {
			return err
		}
		_, err = tx.CreateMemberInfo(ctx, member)
		return err
	})
}

// FindMember returns the membership of the user, or nil when there is none.
func FindMember(t testing.TB, be *backend.Backend, orgID, userID types.ID) *database.MemberInfo {
	t.Helper()

	var info *database.MemberInfo
	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		found, err := tx.FindMemberInfo(ctx, orgID, userID)
		if errors.IsNotFound(err) {
			return nil
		}
		info = found
		return err
	})
	return info
}

// AuditActions returns the actions recorded for the organization, oldest
// first.
func AuditActions(t testing.TB, be *backend.Backend, orgID types.ID) []types.AuditAction {
	t.Helper()

	var actions []types.AuditAction
	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		infos, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{OrganizationID: orgID})
		if err != nil {
			return err
		}
		for _, info := range infos {
			actions = append(actions, info.Action)
		}
		return nil
	})
	return actions
}

// CountAuditEvents returns the number of events in the whole trail.
func CountAuditEvents(t testing.TB, be *backend.Backend) int {
	t.Helper()

	var count int
	Run(t, be, func(ctx context.Context, tx database.Transaction) error {
		infos, err := tx.ListAuditEventInfos(ctx, database.AuditEventFilter{})
		count = len(infos)
		return err
	})
	return count
}
