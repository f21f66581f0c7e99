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

// UserStatus is the account status of a user. Only active users may join
// organizations or answer invitations.
type UserStatus string

const (
	// UserActive is the status of a user in good standing.
	UserActive UserStatus = "active"

	// UserSuspended is the status of a temporarily disabled user.
	UserSuspended UserStatus = "suspended"

	// UserBanned is the status of a permanently disabled user.
	UserBanned UserStatus = "banned"
)

// Validate returns an error if the status is not one of the known values.
func (s UserStatus) Validate() error {
	switch s {
	case UserActive, UserSuspended, UserBanned:
		return nil
	}
	return ErrInvalidUserStatus
}

// User is a user that can belong to organizations.
type User struct {
	// ID is the unique ID of the user.
	ID ID `json:"id"`

	// Username is the username of the user.
	Username string `json:"username"`

	// Status is the account status of the user.
	Status UserStatus `json:"status"`

	// CreatedAt is the time when the user was created.
	CreatedAt time.Time `json:"created_at"`
}
