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

package database

import (
	"fmt"
	"time"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
)

var (
	// ErrCannotChangeCompleted is returned when a completed task is asked to
	// change its status.
	ErrCannotChangeCompleted = errors.FailedPrecond(
		"cannot change the status of a completed task",
	).WithCode("ErrCannotChangeCompleted")

	// ErrCannotChangeCancelled is returned when a canceled task is asked to
	// change its status.
	ErrCannotChangeCancelled = errors.FailedPrecond(
		"cannot change the status of a canceled task",
	).WithCode("ErrCannotChangeCancelled")

	// ErrInvalidTaskTransition is returned when the transition is not in the
	// task state machine.
	ErrInvalidTaskTransition = errors.FailedPrecond("invalid task transition").WithCode("ErrInvalidTaskTransition")

	// ErrUnchangeableDueToStatus is returned when the title or description of
	// a completed or canceled task is edited.
	ErrUnchangeableDueToStatus = errors.FailedPrecond(
		"task cannot be changed in its current status",
	).WithCode("ErrUnchangeableDueToStatus")
)

// taskTransitions lists the allowed target statuses of every non-final
// status.
var taskTransitions = map[types.TaskStatus][]types.TaskStatus{
	types.TaskTodo:       {types.TaskInProgress, types.TaskCompleted, types.TaskCanceled},
	types.TaskInProgress: {types.TaskCompleted, types.TaskCanceled},
}

// TaskInfo is a struct for task information.
type TaskInfo struct {
	// ID is the unique ID of the task.
	ID types.ID `bson:"_id"`

	// OrganizationID is the ID of the organization the task belongs to.
	OrganizationID types.ID `bson:"organization_id"`

	// Title is the title of the task.
	Title string `bson:"title"`

	// Description is the description of the task.
	Description string `bson:"description"`

	// Status is the status of the task.
	Status types.TaskStatus `bson:"status"`

	// AssignedTo is the ID of the member the task is assigned to.
	AssignedTo types.ID `bson:"assigned_to"`

	// CreatedBy is the ID of the member who created the task.
	CreatedBy types.ID `bson:"created_by"`

	// CreatedAt is the time when the task was created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the task was last changed.
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewTaskInfo creates a new TaskInfo in the TODO status.
func NewTaskInfo(
	orgID types.ID,
	title string,
	description string,
	assignedTo types.ID,
	createdBy types.ID,
	now time.Time,
) *TaskInfo {
	return &TaskInfo{
		OrganizationID: orgID,
		Title:          title,
		Description:    description,
		Status:         types.TaskTodo,
		AssignedTo:     assignedTo,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Rename changes the title of the task.
func (i *TaskInfo) Rename(title string, now time.Time) error {
	if i.Status.IsFinal() {
		return fmt.Errorf("rename task %s: %w", i.ID, ErrUnchangeableDueToStatus)
	}

	i.Title = title
	i.UpdatedAt = now
	return nil
}

// ChangeDescription changes the description of the task.
func (i *TaskInfo) ChangeDescription(description string, now time.Time) error {
	if i.Status.IsFinal() {
		return fmt.Errorf("change description of task %s: %w", i.ID, ErrUnchangeableDueToStatus)
	}

	i.Description = description
	i.UpdatedAt = now
	return nil
}

// ChangeStatus moves the task to the given status.
func (i *TaskInfo) ChangeStatus(status types.TaskStatus, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	switch i.Status {
	case types.TaskCompleted:
		return fmt.Errorf("%s -> %s: %w", i.Status, status, ErrCannotChangeCompleted)
	case types.TaskCanceled:
		return fmt.Errorf("%s -> %s: %w", i.Status, status, ErrCannotChangeCancelled)
	}

	for _, allowed := range taskTransitions[i.Status] {
		if allowed == status {
			i.Status = status
			i.UpdatedAt = now
			return nil
		}
	}

	return fmt.Errorf("%s -> %s: %w", i.Status, status, ErrInvalidTaskTransition)
}

// DeepCopy returns a deep copy of the TaskInfo.
func (i *TaskInfo) DeepCopy() *TaskInfo {
	if i == nil {
		return nil
	}

	return &TaskInfo{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Title:          i.Title,
		Description:    i.Description,
		Status:         i.Status,
		AssignedTo:     i.AssignedTo,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// ToTask converts the TaskInfo to a Task.
func (i *TaskInfo) ToTask() *types.Task {
	return &types.Task{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Title:          i.Title,
		Description:    i.Description,
		Status:         i.Status,
		AssignedTo:     i.AssignedTo,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
