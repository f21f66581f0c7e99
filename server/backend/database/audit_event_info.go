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
	"time"

	"github.com/yorkie-team/orgkeeper/api/types"
)

// AuditEventInfo is an immutable record of an actor performing an action.
type AuditEventInfo struct {
	// ID is the unique ID of the event.
	ID types.ID `bson:"_id"`

	// ActorID is the ID of the user who performed the action.
	ActorID types.ID `bson:"actor_id"`

	// OrganizationID is the ID of the organization the action was scoped
	// to. Empty when the action has no organization.
	OrganizationID types.ID `bson:"organization_id,omitempty"`

	// Action is the tag of the action.
	Action types.AuditAction `bson:"action"`

	// CreatedAt is the time when the event was recorded. The store sets it
	// to the transaction time when it is zero.
	CreatedAt time.Time `bson:"created_at"`
}

// NewAuditEventInfo creates a new AuditEventInfo.
func NewAuditEventInfo(actorID, orgID types.ID, action types.AuditAction) *AuditEventInfo {
	return &AuditEventInfo{
		ActorID:        actorID,
		OrganizationID: orgID,
		Action:         action,
	}
}

// DeepCopy returns a deep copy of the AuditEventInfo.
func (i *AuditEventInfo) DeepCopy() *AuditEventInfo {
	if i == nil {
		return nil
	}

	return &AuditEventInfo{
		ID:             i.ID,
		ActorID:        i.ActorID,
		OrganizationID: i.OrganizationID,
		Action:         i.Action,
		CreatedAt:      i.CreatedAt,
	}
}

// ToAuditEvent converts the AuditEventInfo to an AuditEvent.
func (i *AuditEventInfo) ToAuditEvent() *types.AuditEvent {
	return &types.AuditEvent{
		ID:             i.ID,
		ActorID:        i.ActorID,
		OrganizationID: i.OrganizationID,
		Action:         i.Action,
		CreatedAt:      i.CreatedAt,
	}
}
