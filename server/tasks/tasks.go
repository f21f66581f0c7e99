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

// Package tasks provides the task related business logic. The status rules
// live on database.TaskInfo; this package resolves who may apply them.
package tasks

import (
	"context"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// CreateInput is the input of Create.
type CreateInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	Title          string
	Description    string

	// AssignedTo is the member the task is assigned to. It defaults to the
	// actor.
	AssignedTo types.ID
}

// Create creates a task in the TODO status.
func Create(ctx context.Context, tx database.Transaction, in CreateInput) (*types.Task, error) {
	title, err := types.NewTitle(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := types.NewDescription(in.Description)
	if err != nil {
		return nil, err
	}

	assignedTo := in.AssignedTo
	if assignedTo == "" {
		assignedTo = in.ActorID
	}

	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	assignee, err := authz.FindTarget(ctx, tx, in.OrganizationID, assignedTo)
	if err != nil {
		return nil, err
	}
	if err := (authz.TaskPermissionPolicy{}).CanMutate(authz.TaskAccess{
		ActorID:      actor.UserID,
		ActorRole:    actor.Role,
		CreatorID:    actor.UserID,
		AssigneeID:   assignee.UserID,
		AssigneeRole: assignee.Role,
	}); err != nil {
		return nil, err
	}

	info, err := tx.CreateTaskInfo(ctx, database.NewTaskInfo(
		in.OrganizationID,
		title,
		description,
		assignedTo,
		in.ActorID,
		tx.Now(),
	))
	if err != nil {
		return nil, err
	}

	return info.ToTask(), nil
}

// CreateTx runs Create and records TASK_CREATED in one transaction.
func CreateTx(ctx context.Context, be *backend.Backend, in CreateInput) (*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.Create", audit.With(Create, func(in CreateInput, _ *types.Task) *database.AuditEventInfo {
		return database.NewAuditEventInfo(in.ActorID, in.OrganizationID, types.AuditTaskCreated)
	}), in)
}

// Ref identifies a task acted upon by a member.
type Ref struct {
	ActorID        types.ID
	OrganizationID types.ID
	TaskID         types.ID
}

// event builds the audit event of a mutation of the referred task.
func (r Ref) event(action types.AuditAction) *database.AuditEventInfo {
	return database.NewAuditEventInfo(r.ActorID, r.OrganizationID, action)
}

// RenameInput is the input of Rename.
type RenameInput struct {
	Ref
	Title string
}

// Rename changes the title of the task.
func Rename(ctx context.Context, tx database.Transaction, in RenameInput) (*types.Task, error) {
	title, err := types.NewTitle(in.Title)
	if err != nil {
		return nil, err
	}

	return mutate(ctx, tx, in.Ref, func(info *database.TaskInfo) error {
		return info.Rename(title, tx.Now())
	})
}

// RenameTx runs Rename and records TASK_RENAMED in one transaction.
func RenameTx(ctx context.Context, be *backend.Backend, in RenameInput) (*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.Rename", audit.With(Rename, func(in RenameInput, _ *types.Task) *database.AuditEventInfo {
		return in.event(types.AuditTaskRenamed)
	}), in)
}

// ChangeDescriptionInput is the input of ChangeDescription.
type ChangeDescriptionInput struct {
	Ref
	Description string
}

// ChangeDescription changes the description of the task.
func ChangeDescription(ctx context.Context, tx database.Transaction, in ChangeDescriptionInput) (*types.Task, error) {
	description, err := types.NewDescription(in.Description)
	if err != nil {
		return nil, err
	}

	return mutate(ctx, tx, in.Ref, func(info *database.TaskInfo) error {
		return info.ChangeDescription(description, tx.Now())
	})
}

// ChangeDescriptionTx runs ChangeDescription and records
// TASK_DESCRIPTION_CHANGED in one transaction.
func ChangeDescriptionTx(ctx context.Context, be *backend.Backend, in ChangeDescriptionInput) (*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.ChangeDescription", audit.With(
		ChangeDescription,
		func(in ChangeDescriptionInput, _ *types.Task) *database.AuditEventInfo {
			return in.event(types.AuditTaskDescriptionChange)
		},
	), in)
}

// ChangeStatusInput is the input of ChangeStatus.
type ChangeStatusInput struct {
	Ref
	Status types.TaskStatus
}

// ChangeStatus moves the task to the given status.
func ChangeStatus(ctx context.Context, tx database.Transaction, in ChangeStatusInput) (*types.Task, error) {
	if err := in.Status.Validate(); err != nil {
		return nil, err
	}

	return mutate(ctx, tx, in.Ref, func(info *database.TaskInfo) error {
		return info.ChangeStatus(in.Status, tx.Now())
	})
}

// ChangeStatusTx runs ChangeStatus and records TASK_STATUS_CHANGED in one
// transaction.
func ChangeStatusTx(ctx context.Context, be *backend.Backend, in ChangeStatusInput) (*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.ChangeStatus", audit.With(
		ChangeStatus,
		func(in ChangeStatusInput, _ *types.Task) *database.AuditEventInfo {
			return in.event(types.AuditTaskStatusChanged)
		},
	), in)
}

// Delete deletes the task and returns the deleted row.
func Delete(ctx context.Context, tx database.Transaction, in Ref) (*types.Task, error) {
	if _, err := authorize(ctx, tx, in); err != nil {
		return nil, err
	}

	info, err := database.Require(database.ErrTaskNotFound, func() (*database.TaskInfo, error) {
		return tx.DeleteTaskInfo(ctx, in.OrganizationID, in.TaskID)
	})
	if err != nil {
		return nil, err
	}

	return info.ToTask(), nil
}

// DeleteTx runs Delete and records TASK_DELETED in one transaction.
func DeleteTx(ctx context.Context, be *backend.Backend, in Ref) (*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.Delete", audit.With(Delete, func(in Ref, _ *types.Task) *database.AuditEventInfo {
		return in.event(types.AuditTaskDeleted)
	}), in)
}

// Get returns the task. Any member of the organization may read it.
func Get(ctx context.Context, tx database.Transaction, in Ref) (*types.Task, error) {
	if _, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID); err != nil {
		return nil, err
	}

	info, err := findTask(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	return info.ToTask(), nil
}

// GetTx runs Get in its own transaction.
func GetTx(ctx context.Context, be *backend.Backend, in Ref) (*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.Get", Get, in)
}

// ListInput is the input of List.
type ListInput struct {
	ActorID        types.ID
	OrganizationID types.ID
	Filter         database.TaskFilter
}

// List returns the tasks of the organization matching the filter.
func List(ctx context.Context, tx database.Transaction, in ListInput) ([]*types.Task, error) {
	if in.Filter.Status != "" {
		if err := in.Filter.Status.Validate(); err != nil {
			return nil, err
		}
	}
	if _, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID); err != nil {
		return nil, err
	}

	infos, err := tx.ListTaskInfos(ctx, in.OrganizationID, in.Filter)
	if err != nil {
		return nil, err
	}

	tasks := make([]*types.Task, 0, len(infos))
	for _, info := range infos {
		tasks = append(tasks, info.ToTask())
	}
	return tasks, nil
}

// ListTx runs List in its own transaction.
func ListTx(ctx context.Context, be *backend.Backend, in ListInput) ([]*types.Task, error) {
	return audit.Execute(ctx, be, "tasks.List", List, in)
}

// mutate authorizes the actor, applies change to the task and stores it.
func mutate(
	ctx context.Context,
	tx database.Transaction,
	ref Ref,
	change func(info *database.TaskInfo) error,
) (*types.Task, error) {
	info, err := authorize(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	if err := change(info); err != nil {
		return nil, err
	}

	info, err = tx.UpdateTaskInfo(ctx, info)
	if err != nil {
		return nil, err
	}

	return info.ToTask(), nil
}

// authorize resolves the actor, the task and its assignee, then asks the
// task policy.
func authorize(ctx context.Context, tx database.Transaction, ref Ref) (*database.TaskInfo, error) {
	actor, err := authz.FindActor(ctx, tx, ref.OrganizationID, ref.ActorID)
	if err != nil {
		return nil, err
	}
	info, err := findTask(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	assignee, err := authz.FindTarget(ctx, tx, ref.OrganizationID, info.AssignedTo)
	if err != nil {
		return nil, err
	}

	if err := (authz.TaskPermissionPolicy{}).CanMutate(authz.TaskAccess{
		ActorID:      actor.UserID,
		ActorRole:    actor.Role,
		CreatorID:    info.CreatedBy,
		AssigneeID:   assignee.UserID,
		AssigneeRole: assignee.Role,
	}); err != nil {
		return nil, err
	}

	return info, nil
}

func findTask(ctx context.Context, tx database.Transaction, ref Ref) (*database.TaskInfo, error) {
	return database.Require(database.ErrTaskNotFound, func() (*database.TaskInfo, error) {
		return tx.FindTaskInfo(ctx, ref.OrganizationID, ref.TaskID)
	})
}
