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

package types

import (
	"fmt"
	"time"
)

// TaskStatus is the status of a task.
type TaskStatus string

const (
	// TaskTodo is the initial status of a task.
	TaskTodo TaskStatus = "TODO"

	// TaskInProgress is the status of a task being worked on.
	TaskInProgress TaskStatus = "IN_PROGRESS"

	// TaskCompleted is the status of a finished task. Completed tasks are
	// frozen.
	TaskCompleted TaskStatus = "COMPLETED"

	// TaskCanceled is the status of an abandoned task. Canceled tasks are
	// frozen.
	TaskCanceled TaskStatus = "CANCELED"
)

// ParseTaskStatus parses the given string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate returns an error if the status is not one of the known values.
func (s TaskStatus) Validate() error {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted, TaskCanceled:
		return nil
	}
	return fmt.Errorf("%q: %w", s, ErrInvalidTaskStatus)
}

// IsFinal returns true if the task can no longer be edited.
func (s TaskStatus) IsFinal() bool {
	return s == TaskCompleted || s == TaskCanceled
}

// Task is a unit of work owned by an organization.
type Task struct {
	// ID is the unique ID of the task.
	ID ID `json:"id"`

	// OrganizationID is the ID of the organization the task belongs to.
	OrganizationID ID `json:"organization_id"`

	// Title is the title of the task.
	Title string `json:"title"`

	// Description is the description of the task.
	Description string `json:"description"`

	// Status is the status of the task.
	Status TaskStatus `json:"status"`

	// AssignedTo is the ID of the user the task is assigned to.
	AssignedTo ID `json:"assigned_to"`

	// CreatedBy is the ID of the user who created the task.
	CreatedBy ID `json:"created_by"`

	// CreatedAt is the time when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the task was last changed.
	UpdatedAt time.Time `json:"updated_at"`
}
