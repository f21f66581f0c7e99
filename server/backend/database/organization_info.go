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

// OrganizationInfo is a struct for organization information.
type OrganizationInfo struct {
	// ID is the unique ID of the organization.
	ID types.ID `bson:"_id"`

	// Name is the display name of the organization.
	Name string `bson:"name"`

	// CreatedBy is the ID of the user who created the organization.
	CreatedBy types.ID `bson:"created_by"`

	// CreatedAt is the time when the organization was created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the organization was last renamed.
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewOrganizationInfo creates a new OrganizationInfo.
func NewOrganizationInfo(name string, createdBy types.ID, now time.Time) *OrganizationInfo {
	return &OrganizationInfo{
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DeepCopy returns a deep copy of the OrganizationInfo.
func (i *OrganizationInfo) DeepCopy() *OrganizationInfo {
	if i == nil {
		return nil
	}

	return &OrganizationInfo{
		ID:        i.ID,
		Name:      i.Name,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToOrganization converts the OrganizationInfo to an Organization.
func (i *OrganizationInfo) ToOrganization() *types.Organization {
	return &types.Organization{
		ID:        i.ID,
		Name:      i.Name,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
