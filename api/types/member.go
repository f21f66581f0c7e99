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

import "time"

// Member is a member of an organization.
type Member struct {
	// OrganizationID is the ID of the organization.
	OrganizationID ID `json:"organization_id"`

	// UserID is the ID of the user.
	UserID ID `json:"user_id"`

	// Role is the role of the user in the organization.
	Role string `json:"role"`

	// InvitedBy is the ID of the user who hired or invited this member.
	InvitedBy ID `json:"invited_by"`

	// JoinedAt is the time when the user joined the organization.
	JoinedAt time.Time `json:"joined_at"`
}
