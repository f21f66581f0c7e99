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

func TestTaskInfo(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	later := now.Add(time.Hour)

	newTask := func(status types.TaskStatus) *database.TaskInfo {
		info := database.NewTaskInfo("org", "Write docs", "", "alice", "alice", now)
		info.Status = status
		return info
	}

	t.Run("allowed transitions test", func(t *testing.T) {
		tests := []struct {
			from types.TaskStatus
			to   types.TaskStatus
		}{
			{types.TaskTodo, types.TaskInProgress},
			{types.TaskTodo, types.TaskCompleted},
			{types.TaskTodo, types.TaskCanceled},
			{types.TaskInProgress, types.TaskCompleted},
			{types.TaskInProgress, types.TaskCanceled},
		}
		for _, tt := range tests {
			t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
				info := newTask(tt.from)
				assert.NoError(t, info.ChangeStatus(tt.to, later))
				assert.Equal(t, tt.to, info.Status)
				assert.Equal(t, later, info.UpdatedAt)
			})
		}
	})

	t.Run("rejected transitions test", func(t *testing.T) {
		tests := []struct {
			from types.TaskStatus
			to   types.TaskStatus
			err  error
		}{
			{types.TaskTodo, types.TaskTodo, database.ErrInvalidTaskTransition},
			{types.TaskInProgress, types.TaskTodo, database.ErrInvalidTaskTransition},
			{types.TaskInProgress, types.TaskInProgress, database.ErrInvalidTaskTransition},
			{types.TaskCompleted, types.TaskInProgress, database.ErrCannotChangeCompleted},
			{types.TaskCompleted, types.TaskTodo, database.ErrCannotChangeCompleted},
			{types.TaskCompleted, types.TaskCanceled, database.ErrCannotChangeCompleted},
			{types.TaskCompleted, types.TaskCompleted, database.ErrCannotChangeCompleted},
			{types.TaskCanceled, types.TaskTodo, database.ErrCannotChangeCancelled},
			{types.TaskCanceled, types.TaskInProgress, database.ErrCannotChangeCancelled},
			{types.TaskCanceled, types.TaskCompleted, database.ErrCannotChangeCancelled},
			{types.TaskCanceled, types.TaskCanceled, database.ErrCannotChangeCancelled},
		}
		for _, tt := range tests {
			t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
				info := newTask(tt.from)
				assert.ErrorIs(t, info.ChangeStatus(tt.to, later), tt.err)
				assert.Equal(t, tt.from, info.Status)
				assert.Equal(t, now, info.UpdatedAt)
			})
		}
	})

	t.Run("completed and canceled errors are distinct test", func(t *testing.T) {
		err := newTask(types.TaskCanceled).ChangeStatus(types.TaskInProgress, later)
		assert.ErrorIs(t, err, database.ErrCannotChangeCancelled)
		assert.NotErrorIs(t, err, database.ErrCannotChangeCompleted)
	})

	t.Run("unknown status test", func(t *testing.T) {
		assert.ErrorIs(t, newTask(types.TaskTodo).ChangeStatus("DONE", later), types.ErrInvalidTaskStatus)
	})

	t.Run("edit text test", func(t *testing.T) {
		info := newTask(types.TaskInProgress)
		assert.NoError(t, info.Rename("Write more docs", later))
		assert.NoError(t, info.ChangeDescription("Cover the CLI.", later))
		assert.Equal(t, "Write more docs", info.Title)
		assert.Equal(t, "Cover the CLI.", info.Description)

		for _, status := range []types.TaskStatus{types.TaskCompleted, types.TaskCanceled} {
			frozen := newTask(status)
			assert.ErrorIs(t, frozen.Rename("x", later), database.ErrUnchangeableDueToStatus)
			assert.ErrorIs(t, frozen.ChangeDescription("x", later), database.ErrUnchangeableDueToStatus)
			assert.Equal(t, "Write docs", frozen.Title)
		}
	})

	t.Run("deep copy test", func(t *testing.T) {
		info := newTask(types.TaskTodo)
		clone := info.DeepCopy()
		assert.NoError(t, clone.Rename("Other", later))
		assert.Equal(t, "Write docs", info.Title)
		assert.Nil(t, (*database.TaskInfo)(nil).DeepCopy())
	})
}
