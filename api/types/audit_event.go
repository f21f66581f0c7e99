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

// AuditAction is the tag of an audited operation.
type AuditAction string

// Below are the actions recorded in the audit trail.
const (
	AuditOrgCreated            AuditAction = "ORG_CREATED"
	AuditOrgRenamed            AuditAction = "ORG_RENAMED"
	AuditOrgDeleted            AuditAction = "ORG_DELETED"
	AuditOrgMemberHired        AuditAction = "ORG_MEMBER_HIRED"
	AuditOrgMemberFired        AuditAction = "ORG_MEMBER_FIRED"
	AuditOrgMemberRoleChanged  AuditAction = "ORG_MEMBER_ROLE_CHANGED"
	AuditTaskCreated           AuditAction = "TASK_CREATED"
	AuditTaskRenamed           AuditAction = "TASK_RENAMED"
	AuditTaskDescriptionChange AuditAction = "TASK_DESCRIPTION_CHANGED"
	AuditTaskStatusChanged     AuditAction = "TASK_STATUS_CHANGED"
	AuditTaskDeleted           AuditAction = "TASK_DELETED"
	AuditInvitationCreated     AuditAction = "INVITATION_CREATED"
	AuditInvitationAccepted    AuditAction = "INVITATION_ACCEPTED"
	AuditInvitationRejected    AuditAction = "INVITATION_REJECTED"
	AuditInvitationCanceled    AuditAction = "INVITATION_CANCELED"
)

var auditActions = map[AuditAction]bool{
	AuditOrgCreated:            true,
	AuditOrgRenamed:            true,
	AuditOrgDeleted:            true,
	AuditOrgMemberHired:        true,
	AuditOrgMemberFired:        true,
	AuditOrgMemberRoleChanged:  true,
	AuditTaskCreated:           true,
	AuditTaskRenamed:           true,
	AuditTaskDescriptionChange: true,
	AuditTaskStatusChanged:     true,
	AuditTaskDeleted:           true,
	AuditInvitationCreated:     true,
	AuditInvitationAccepted:    true,
	AuditInvitationRejected:    true,
	AuditInvitationCanceled:    true,
}

// Validate returns an error if the action is not one of the known tags.
func (a AuditAction) Validate() error {
	if !auditActions[a] {
		return fmt.Errorf("%q: %w", a, ErrInvalidAuditAction)
	}
	return nil
}

// String returns the tag of the action.
func (a AuditAction) String() string {
	return string(a)
}

// AuditEvent is an immutable record of an actor performing an action.
type AuditEvent struct {
	// ID is the unique ID of the event.
	ID ID `json:"id"`

	// ActorID is the ID of the user who performed the action.
	ActorID ID `json:"actor_id"`

	// OrganizationID is the ID of the organization the action was scoped to.
	// It is empty for actions outside any organization.
	OrganizationID ID `json:"organization_id,omitempty"`

	// Action is the tag of the action.
	Action AuditAction `json:"action"`

	// CreatedAt is the time when the event was recorded.
	CreatedAt time.Time `json:"created_at"`
}
