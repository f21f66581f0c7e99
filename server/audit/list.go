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

package audit

import (
	"context"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/authz"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// ListInput is the input of List.
type ListInput struct {
	ActorID        types.ID
	OrganizationID types.ID

	// Filter narrows the events. Its OrganizationID is replaced with the
	// one above.
	Filter database.AuditEventFilter
}

// List returns the audit trail of the organization, oldest first. Only
// owners and admins may read it.
func List(ctx context.Context, tx database.Transaction, in ListInput) ([]*types.AuditEvent, error) {
	actor, err := authz.FindActor(ctx, tx, in.OrganizationID, in.ActorID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewAudit(actor.Role); err != nil {
		return nil, err
	}

	filter := in.Filter
	filter.OrganizationID = in.OrganizationID
	if filter.Action != "" {
		if err := filter.Action.Validate(); err != nil {
			return nil, err
		}
	}

	infos, err := tx.ListAuditEventInfos(ctx, filter)
	if err != nil {
		return nil, err
	}

	events := make([]*types.AuditEvent, 0, len(infos))
	for _, info := range infos {
		events = append(events, info.ToAuditEvent())
	}
	return events, nil
}

// ListTx runs List in its own transaction.
func ListTx(ctx context.Context, be *backend.Backend, in ListInput) ([]*types.AuditEvent, error) {
	return Execute(ctx, be, "audit.List", List, in)
}
