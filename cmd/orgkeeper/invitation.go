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
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/invitations"
)

func newInvitationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invitation",
		Aliases: []string{"invite"},
		Short:   "Manage invitations",
	}

	cmd.AddCommand(
		newInvitationCreateCmd(),
		&cobra.Command{
			Use:   "accept [invitation-id]",
			Short: "Accept an invitation sent to the actor",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withInvitation(cmd, func(ctx context.Context, be *backend.Backend, actorID types.ID) (*types.Invitation, error) {
					return invitations.AcceptTx(ctx, be, invitations.RespondInput{
						ActorID:      actorID,
						InvitationID: types.ID(args[0]),
					})
				})
			},
		},
		&cobra.Command{
			Use:   "reject [invitation-id]",
			Short: "Reject an invitation sent to the actor",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withInvitation(cmd, func(ctx context.Context, be *backend.Backend, actorID types.ID) (*types.Invitation, error) {
					return invitations.RejectTx(ctx, be, invitations.RespondInput{
						ActorID:      actorID,
						InvitationID: types.ID(args[0]),
					})
				})
			},
		},
		&cobra.Command{
			Use:   "cancel [invitation-id]",
			Short: "Cancel a pending invitation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withInvitation(cmd, func(ctx context.Context, be *backend.Backend, actorID types.ID) (*types.Invitation, error) {
					return invitations.CancelTx(ctx, be, invitations.CancelInput{
						ActorID:      actorID,
						InvitationID: types.ID(args[0]),
					})
				})
			},
		},
		newInvitationListCmd(),
	)

	return cmd
}

func newInvitationCreateCmd() *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create [org-id] [user]",
		Short: "Invite a user to an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInvitation(cmd, func(ctx context.Context, be *backend.Backend, actorID types.ID) (*types.Invitation, error) {
				invitedID, err := resolveUser(ctx, be, args[1])
				if err != nil {
					return nil, err
				}

				return invitations.CreateTx(ctx, be, invitations.CreateInput{
					ActorID:        actorID,
					OrganizationID: types.ID(args[0]),
					InvitedUserID:  invitedID,
					Role:           database.MemberRole(role),
					TTL:            ttl,
				})
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", database.Member.String(), "Role granted on acceptance: admin, member")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "How long the invitation stays answerable. Defaults to the configured TTL")

	return cmd
}

func newInvitationListCmd() *cobra.Command {
	var (
		orgID  string
		user   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the invitations sent to the actor, or those of an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := database.InvitationFilter{OrganizationID: types.ID(orgID)}
			if status != "" {
				parsed, err := types.ParseInvitationStatus(status)
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
				if user != "" {
					if filter.InvitedUserID, err = resolveUser(ctx, be, user); err != nil {
						return err
					}
				}

				list, err := invitations.ListTx(ctx, be, invitations.ListInput{
					ActorID: actorID,
					Filter:  filter,
				})
				if err != nil {
					return err
				}

				tw := newTable(table.Row{
					"ID",
					"ORGANIZATION",
					"INVITED USER",
					"INVITED BY",
					"ROLE",
					"STATUS",
					"EXPIRES AT",
				})
				for _, invitation := range list {
					tw.AppendRow(table.Row{
						invitation.ID,
						invitation.OrganizationID,
						invitation.InvitedUserID,
						invitation.InvitedByUserID,
						invitation.AssignedRole,
						invitation.Status,
						formatTime(invitation.ExpiredAt),
					})
				}
				return render(cmd.OutOrStdout(), tw)
			})
		},
	}
	cmd.Flags().StringVar(&orgID, "org", "", "List the invitations of this organization")
	cmd.Flags().StringVar(&user, "user", "", "Only list invitations sent to this user")
	cmd.Flags().StringVar(&status, "status", "", "Only list invitations in this status")

	return cmd
}

// withInvitation resolves the actor of an invitation command, runs fn and
// prints the resulting invitation.
func withInvitation(
	cmd *cobra.Command,
	fn func(ctx context.Context, be *backend.Backend, actorID types.ID) (*types.Invitation, error),
) error {
	return withBackend(func(ctx context.Context, be *backend.Backend) error {
		actorID, err := resolveActor(ctx, be)
		if err != nil {
			return err
		}

		invitation, err := fn(ctx, be, actorID)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", invitation.ID, invitation.Status)
		return err
	})
}
