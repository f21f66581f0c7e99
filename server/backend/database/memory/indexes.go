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

package memory

import "github.com/hashicorp/go-memdb"

var (
	tblUsers         = "users"
	tblOrganizations = "organizations"
	tblMembers       = "members"
	tblTasks         = "tasks"
	tblInvitations   = "invitations"
	tblAuditEvents   = "audit_events"
)

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tblUsers: {
			Name: tblUsers,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"username": {
					Name:    "username",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Username"},
				},
			},
		},
		tblOrganizations: {
			Name: tblOrganizations,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		},
		tblMembers: {
			Name: tblMembers,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"organization_id_user_id": {
					Name:   "organization_id_user_id",
					Unique: true,
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.StringFieldIndex{Field: "OrganizationID"},
							&memdb.StringFieldIndex{Field: "UserID"},
						},
					},
				},
				"organization_id": {
					Name:    "organization_id",
					Indexer: &memdb.StringFieldIndex{Field: "OrganizationID"},
				},
				"user_id": {
					Name:    "user_id",
					Indexer: &memdb.StringFieldIndex{Field: "UserID"},
				},
			},
		},
		tblTasks: {
			Name: tblTasks,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"organization_id": {
					Name:    "organization_id",
					Indexer: &memdb.StringFieldIndex{Field: "OrganizationID"},
				},
			},
		},
		tblInvitations: {
			Name: tblInvitations,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"organization_id": {
					Name:    "organization_id",
					Indexer: &memdb.StringFieldIndex{Field: "OrganizationID"},
				},
				"invited_user_id": {
					Name:    "invited_user_id",
					Indexer: &memdb.StringFieldIndex{Field: "InvitedUserID"},
				},
				"organization_id_invited_user_id_status": {
					Name: "organization_id_invited_user_id_status",
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.StringFieldIndex{Field: "OrganizationID"},
							&memdb.StringFieldIndex{Field: "InvitedUserID"},
							&memdb.StringFieldIndex{Field: "Status"},
						},
					},
				},
				"status": {
					Name:    "status",
					Indexer: &memdb.StringFieldIndex{Field: "Status"},
				},
			},
		},
		tblAuditEvents: {
			Name: tblAuditEvents,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"organization_id": {
					Name:         "organization_id",
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "OrganizationID"},
				},
			},
		},
	},
}
