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
	"github.com/yorkie-team/orgkeeper/server/organizations"
)

func newOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "org",
		Aliases: []string{"organization"},
		Short:   "Manage organizations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create [name]",
			Short: "Create an organization owned by the actor",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					actorID, err := resolveActor(ctx, be)
					if err != nil {
						return err
					}

					org, err := organizations.CreateTx(ctx, be, organizations.CreateInput{
						ActorID: actorID,
						Name:    args[0],
					})
					if err != nil {
						return err
					}

					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", org.ID)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "rename [org-id] [name]",
			Short: "Rename an organization",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					actorID, err := resolveActor(ctx, be)
					if err != nil {
						return err
					}

					org, err := organizations.RenameTx(ctx, be, organizations.RenameInput{
						ActorID:        actorID,
						OrganizationID: types.ID(args[0]),
						Name:           args[1],
					})
					if err != nil {
						return err
					}

					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s renamed to %s\n", org.ID, org.Name)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "delete [org-id]",
			Short: "Delete an organization whose only member is its owner",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					actorID, err := resolveActor(ctx, be)
					if err != nil {
						return err
					}

					org, err := organizations.DeleteTx(ctx, be, organizations.DeleteInput{
						ActorID:        actorID,
						OrganizationID: types.ID(args[0]),
					})
					if err != nil {
						return err
					}

					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s deleted\n", org.ID)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List the organizations of the actor",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					actorID, err := resolveActor(ctx, be)
					if err != nil {
						return err
					}

					orgs, err := organizations.ListByUserTx(ctx, be, actorID)
					if err != nil {
						return err
					}

					tw := newTable(table.Row{"ID", "NAME", "CREATED BY", "CREATED AT", "UPDATED AT"})
					for _, org := range orgs {
						tw.AppendRow(table.Row{
							org.ID,
							org.Name,
							org.CreatedBy,
							formatTime(org.CreatedAt),
							formatTime(org.UpdatedAt),
						})
					}
					return render(cmd.OutOrStdout(), tw)
				})
			},
		},
	)

	return cmd
}
