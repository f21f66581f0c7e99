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

// Organization is a group of users that share tasks.
type Organization struct {
	// ID is the unique ID of the organization.
	ID ID `json:"id"`

	// Name is the display name of the organization.
	Name string `json:"name"`

	// CreatedBy is the ID of the user who created the organization.
	CreatedBy ID `json:"created_by"`

	// CreatedAt is the time when the organization was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the organization was last renamed.
	UpdatedAt time.Time `json:"updated_at"`
}
