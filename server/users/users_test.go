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

package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/users"
	"github.com/yorkie-team/orgkeeper/test/helper"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	be := helper.TestBackend(t, helper.NewClock())

	t.Run("register test", func(t *testing.T) {
		alice, err := users.RegisterTx(ctx, be, users.RegisterInput{Username: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "alice", alice.Username)
		assert.Equal(t, types.UserActive, alice.Status)

		_, err = users.RegisterTx(ctx, be, users.RegisterInput{Username: "alice"})
		assert.ErrorIs(t, err, database.ErrUserAlreadyExists)

		_, err = users.RegisterTx(ctx, be, users.RegisterInput{Username: " bob"})
		assert.ErrorIs(t, err, types.ErrInvalidFields)

		_, err = users.RegisterTx(ctx, be, users.RegisterInput{Username: "b"})
		assert.ErrorIs(t, err, types.ErrInvalidFields)
	})

	t.Run("find test", func(t *testing.T) {
		carol, err := users.RegisterTx(ctx, be, users.RegisterInput{Username: "carol"})
		require.NoError(t, err)

		found, err := users.FindTx(ctx, be, carol.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, carol.Username, found.Username)

		found, err = users.FindTx(ctx, be, "carol")
		assert.NoError(t, err)
		assert.Equal(t, carol.ID, found.ID)

		_, err = users.FindTx(ctx, be, "nobody")
		assert.ErrorIs(t, err, users.ErrUserDoesNotExist)
		_, err = users.FindTx(ctx, be, "000000000000000000000000")
		assert.ErrorIs(t, err, users.ErrUserDoesNotExist)
	})

	t.Run("set status and find active test", func(t *testing.T) {
		dave, err := users.RegisterTx(ctx, be, users.RegisterInput{Username: "dave"})
		require.NoError(t, err)

		findActive := func() error {
			return be.DB.RunInTransaction(ctx, func(ctx context.Context, tx database.Transaction) error {
				_, err := users.FindActive(ctx, tx, dave.ID)
				return err
			})
		}
		assert.NoError(t, findActive())

		updated, err := users.SetStatusTx(ctx, be, users.SetStatusInput{UserID: dave.ID, Status: types.UserSuspended})
		require.NoError(t, err)
		assert.Equal(t, types.UserSuspended, updated.Status)
		assert.ErrorIs(t, findActive(), database.ErrUserSuspended)

		_, err = users.SetStatusTx(ctx, be, users.SetStatusInput{UserID: dave.ID, Status: types.UserBanned})
		require.NoError(t, err)
		assert.ErrorIs(t, findActive(), database.ErrUserBanned)

		_, err = users.SetStatusTx(ctx, be, users.SetStatusInput{UserID: dave.ID, Status: "gone"})
		assert.ErrorIs(t, err, types.ErrInvalidUserStatus)

		_, err = users.SetStatusTx(ctx, be, users.SetStatusInput{
			UserID: "000000000000000000000000",
			Status: types.UserActive,
		})
		assert.ErrorIs(t, err, users.ErrUserDoesNotExist)
	})

	t.Run("list test", func(t *testing.T) {
		list, err := users.ListTx(ctx, be)
		assert.NoError(t, err)
		assert.Len(t, list, 3)
		assert.Equal(t, "alice", list[0].Username)
	})
}
