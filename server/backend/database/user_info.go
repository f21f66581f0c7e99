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
	"github.com/yorkie-team/orgkeeper/pkg/errors"
)

var (
	// ErrUserSuspended is returned when a suspended user tries to act.
	ErrUserSuspended = errors.PermissionDenied("user is suspended").WithCode("ErrUserSuspended")

	// ErrUserBanned is returned when a banned user tries to act.
	ErrUserBanned = errors.PermissionDenied("user is banned").WithCode("ErrUserBanned")
)

// UserInfo is a structure representing information of a user.
type UserInfo struct {
	ID        types.ID         `bson:"_id"`
	Username  string           `bson:"username"`
	Status    types.UserStatus `bson:"status"`
	CreatedAt time.Time        `bson:"created_at"`
}

// NewUserInfo creates a new active UserInfo of the given username.
func NewUserInfo(username string, now time.Time) *UserInfo {
	return &UserInfo{
		Username:  username,
		Status:    types.UserActive,
		CreatedAt: now,
	}
}

// EnsureIsActive returns an error if the user may not act.
func (i *UserInfo) EnsureIsActive() error {
	switch i.Status {
	case types.UserSuspended:
		return ErrUserSuspended
	case types.UserBanned:
		return ErrUserBanned
	}
	return nil
}

// DeepCopy returns a deep copy of the UserInfo
func (i *UserInfo) DeepCopy() *UserInfo {
	if i == nil {
		return nil
	}

	return &UserInfo{
		ID:        i.ID,
		Username:  i.Username,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}

// ToUser converts the UserInfo to a User.
func (i *UserInfo) ToUser() *types.User {
	return &types.User{
		ID:        i.ID,
		Username:  i.Username,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}
