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
	"github.com/yorkie-team/orgkeeper/server/members"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage organization members",
	}

	cmd.AddCommand(
		newHireCmd(),
		&cobra.Command{
			Use:   "role [org-id] [user] [role]",
			Short: "Change the role of a member",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMember(cmd, args, func(
					ctx context.Context,
					be *backend.Backend,
					actorID, orgID, targetID types.ID,
				) (*types.Member, error) {
					return members.ChangeRoleTx(ctx, be, members.ChangeRoleInput{
						ActorID:        actorID,
						OrganizationID: orgID,
						TargetID:       targetID,
						NewRole:        database.MemberRole(args[2]),
					})
				})
			},
		},
		&cobra.Command{
			Use:   "fire [org-id] [user]",
			Short: "Remove a member from an organization",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMember(cmd, args, func(
					ctx context.Context,
					be *backend.Backend,
					actorID, orgID, targetID types.ID,
				) (*types.Member, error) {
					return members.FireTx(ctx, be, members.FireInput{
						ActorID:        actorID,
						OrganizationID: orgID,
						TargetID:       targetID,
					})
				})
			},
		},
		&cobra.Command{
			Use:   "ls [org-id]",
			Short: "List the members of an organization",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBackend(func(ctx context.Context, be *backend.Backend) error {
					actorID, err := resolveActor(ctx, be)
					if err != nil {
						return err
					}

					list, err := members.ListTx(ctx, be, members.ListInput{
						ActorID:        actorID,
						OrganizationID: types.ID(args[0]),
					})
					if err != nil {
						return err
					}

					tw := newTable(table.Row{"USER", "ROLE", "INVITED BY", "JOINED AT"})
					for _, member := range list {
						tw.AppendRow(table.Row{member.UserID, member.Role, member.InvitedBy, formatTime(member.JoinedAt)})
					}
					return render(cmd.OutOrStdout(), tw)
				})
			},
		},
	)

	return cmd
}

func newHireCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "hire [org-id] [user]",
		Short: "Add a user to an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMember(cmd, args, func(
				ctx context.Context,
				be *backend.Backend,
				actorID, orgID, targetID types.ID,
			) (*types.Member, error) {
				return members.HireTx(ctx, be, members.HireInput{
					ActorID:        actorID,
					OrganizationID: orgID,
					TargetID:       targetID,
					Role:           database.MemberRole(role),
				})
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", database.Member.String(), "Role of the new member: owner, admin, member")

	return cmd
}

// withMember resolves the actor and the target of a membership command given
// as [org-id] [user], runs fn and prints the resulting membership.
func withMember(
	cmd *cobra.Command,
	args []string,
	fn func(ctx context.Context, be *backend.Backend, actorID, orgID, targetID types.ID) (*types.Member, error),
) error {
	return withBackend(func(ctx context.Context, be *backend.Backend) error {
		actorID, err := resolveActor(ctx, be)
		if err != nil {
			return err
		}
		targetID, err := resolveUser(ctx, be, args[1])
		if err != nil {
			return err
		}

		member, err := fn(ctx, be, actorID, types.ID(args[0]), targetID)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", member.OrganizationID, member.UserID, member.Role)
		return err
	})
}
