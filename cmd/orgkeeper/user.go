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
	"github.com/yorkie-team/orgkeeper/server/users"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "register [username]",
			Short: "Register a new active user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					user, err := users.RegisterTx(ctx, be, users.RegisterInput{Username: args[0]})
					if err != nil {
						return err
					}

					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", user.ID)
					return err
				})
			},
		},
		newUserStatusCmd("ban", "Ban a user", types.UserBanned),
		newUserStatusCmd("suspend", "Suspend a user", types.UserSuspended),
		newUserStatusCmd("activate", "Activate a suspended or banned user", types.UserActive),
		&cobra.Command{
			Use:   "ls",
			Short: "List all users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					list, err := users.ListTx(ctx, be)
					if err != nil {
						return err
					}

					tw := newTable(table.Row{"ID", "USERNAME", "STATUS", "CREATED AT"})
					for _, user := range list {
						tw.AppendRow(table.Row{user.ID, user.Username, user.Status, formatTime(user.CreatedAt)})
					}
					return render(cmd.OutOrStdout(), tw)
				})
			},
		},
	)

	return cmd
}

func newUserStatusCmd(use, short string, status types.UserStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [user]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(func(ctx context.Context, be *backend.Backend) error {
				userID, err := resolveUser(ctx, be, args[0])
				if err != nil {
					return err
				}

				user, err := users.SetStatusTx(ctx, be, users.SetStatusInput{UserID: userID, Status: status})
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", user.Username, user.Status)
				return err
			})
		},
	}
}
