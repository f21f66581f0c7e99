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
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}
	cmd.AddCommand(newAuditListCmd())

	return cmd
}

func newAuditListCmd() *cobra.Command {
	var (
		action string
		actor  string
		since  time.Duration
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "ls [org-id]",
		Short: "List the audit events of an organization, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := database.AuditEventFilter{
				Action: types.AuditAction(action),
				Limit:  limit,
			}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}

			return withBackend(func(ctx context.Context, be *backend.Backend) error {
				actorID, err := resolveActor(ctx, be)
				if err != nil {
					return err
				}
				if actor != "" {
					if filter.ActorID, err = resolveUser(ctx, be, actor); err != nil {
						return err
					}
				}

				events, err := audit.ListTx(ctx, be, audit.ListInput{
					ActorID:        actorID,
					OrganizationID: types.ID(args[0]),
					Filter:         filter,
				})
				if err != nil {
					return err
				}

				tw := newTable(table.Row{"ID", "ACTION", "ACTOR", "CREATED AT"})
				for _, event := range events {
					tw.AppendRow(table.Row{event.ID, event.Action, event.ActorID, formatTime(event.CreatedAt)})
				}
				return render(cmd.OutOrStdout(), tw)
			})
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "Only list events with this action, e.g. ORG_MEMBER_HIRED")
	cmd.Flags().StringVar(&actor, "by", "", "Only list events performed by this user")
	cmd.Flags().DurationVar(&since, "since", 0, "Only list events newer than this duration")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of events to list")

	return cmd
}
