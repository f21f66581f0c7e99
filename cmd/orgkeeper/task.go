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

package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/tasks"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage organization tasks",
	}

	cmd.AddCommand(
		newTaskCreateCmd(),
		&cobra.Command{
			Use:   "rename [org-id] [task-id] [title]",
			Short: "Rename a task",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTask(cmd, args, func(ctx context.Context, be *backend.Backend, ref tasks.Ref) (*types.Task, error) {
					return tasks.RenameTx(ctx, be, tasks.RenameInput{Ref: ref, Title: args[2]})
				})
			},
		},
		&cobra.Command{
			Use:   "describe [org-id] [task-id] [description]",
			Short: "Change the description of a task",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTask(cmd, args, func(ctx context.Context, be *backend.Backend, ref tasks.Ref) (*types.Task, error) {
					return tasks.ChangeDescriptionTx(ctx, be, tasks.ChangeDescriptionInput{Ref: ref, Description: args[2]})
				})
			},
		},
		&cobra.Command{
			Use:   "status [org-id] [task-id] [status]",
			Short: "Move a task to TODO, IN_PROGRESS, COMPLETED or CANCELED",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				status, err := types.ParseTaskStatus(args[2])
				if err != nil {
					return err
				}

				return withTask(cmd, args, func(ctx context.Context, be *backend.Backend, ref tasks.Ref) (*types.Task, error) {
					return tasks.ChangeStatusTx(ctx, be, tasks.ChangeStatusInput{Ref: ref, Status: status})
				})
			},
		},
		&cobra.Command{
			Use:   "delete [org-id] [task-id]",
			Short: "Delete a task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTask(cmd, args, func(ctx context.Context, be *backend.Backend, ref tasks.Ref) (*types.Task, error) {
					return tasks.DeleteTx(ctx, be, ref)
				})
			},
		},
		newTaskListCmd(),
	)

	return cmd
}

func newTaskCreateCmd() *cobra.Command {
	var (
		description string
		assignee    string
	)

	cmd := &cobra.Command{
		Use:   "create [org-id] [title]",
		Short: "Create a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(func(ctx context.Context, be *backend.Backend) error {
				actorID, err := resolveActor(ctx, be)
				if err != nil {
					return err
				}

				var assignedTo types.ID
				if assignee != "" {
					if assignedTo, err = resolveUser(ctx, be, assignee); err != nil {
						return err
					}
				}

				task, err := tasks.CreateTx(ctx, be, tasks.CreateInput{
					ActorID:        actorID,
					OrganizationID: types.ID(args[0]),
					Title:          args[1],
					Description:    description,
					AssignedTo:     assignedTo,
				})
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", task.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Description of the task")
	cmd.Flags().StringVar(&assignee, "assignee", "", "ID or username of the assignee. Defaults to the actor")

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var (
		status   string
		assignee string
	)

	cmd := &cobra.Command{
		Use:   "ls [org-id]",
		Short: "List the tasks of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter database.TaskFilter
			if status != "" {
				parsed, err := types.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				filter.Status = parsed
			}

			return withBackend(func(ctx context.Context, be *backend.Backend) error {
				actorID, err := resolveActor(ctx, be)
				if err != nil {
					return err
				}
				if assignee != "" {
					if filter.AssignedTo, err = resolveUser(ctx, be, assignee); err != nil {
						return err
					}
				}

				list, err := tasks.ListTx(ctx, be, tasks.ListInput{
					ActorID:        actorID,
					OrganizationID: types.ID(args[0]),
					Filter:         filter,
				})
				if err != nil {
					return err
				}

				tw := newTable(table.Row{"ID", "TITLE", "STATUS", "ASSIGNED TO", "CREATED BY", "UPDATED AT"})
				for _, task := range list {
					tw.AppendRow(table.Row{
						task.ID,
						task.Title,
						task.Status,
						task.AssignedTo,
						task.CreatedBy,
						formatTime(task.UpdatedAt),
					})
				}
				return render(cmd.OutOrStdout(), tw)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only list tasks in this status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only list tasks assigned to this user")

	return cmd
}

// withTask resolves the actor of a task command given as [org-id] [task-id],
// runs fn and prints the resulting task.
func withTask(
	cmd *cobra.Command,
	args []string,
	fn func(ctx context.Context, be *backend.Backend, ref tasks.Ref) (*types.Task, error),
) error {
	return withBackend(func(ctx context.Context, be *backend.Backend) error {
		actorID, err := resolveActor(ctx, be)
		if err != nil {
			return err
		}

		task, err := fn(ctx, be, tasks.Ref{
			ActorID:        actorID,
			OrganizationID: types.ID(args[0]),
			TaskID:         types.ID(args[1]),
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", task.ID, task.Status, task.Title)
		return err
	})
}
