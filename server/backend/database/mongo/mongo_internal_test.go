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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/event"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

func TestQueryMonitor(t *testing.T) {
	m := NewQueryMonitor(&MonitorConfig{})
	assert.Nil(t, m.CreateCommandMonitor())

	failure := func(msg string) *event.CommandFailedEvent {
		return &event.CommandFailedEvent{Failure: errors.New(msg)}
	}

	assert.True(t, m.isExpectedFailure(failure(
		"E11000 duplicate key error collection: orgkeeper.invitations index: organization_id_1_invited_user_id_1",
	)))
	assert.False(t, m.isExpectedFailure(failure(
		"E11000 duplicate key error collection: orgkeeper.tasks index: _id_",
	)))
	assert.False(t, m.isExpectedFailure(failure("connection reset")))
	assert.False(t, m.isExpectedFailure(&event.CommandFailedEvent{}))
}

func TestInvitationQuery(t *testing.T) {
	now := time.Now()

	query := invitationQuery(database.InvitationFilter{OrganizationID: "org", Status: types.InvitationPending})
	assert.Equal(t, types.InvitationPending, query[StatusKey])
	assert.NotContains(t, query, "expired_at")

	query = invitationQuery(database.InvitationFilter{Status: types.InvitationExpired, Now: now})
	assert.Contains(t, query, "$or")
	assert.NotContains(t, query, StatusKey)

	query = invitationQuery(database.InvitationFilter{Status: types.InvitationAccepted, Now: now})
	assert.Equal(t, types.InvitationAccepted, query[StatusKey])
}

func TestMapError(t *testing.T) {
	err := mapError("insert task", errors.New("socket closed"), nil)
	assert.ErrorIs(t, err, database.ErrPersistence)
}
