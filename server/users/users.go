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

// Package users provides the user related business logic. Users are
// collaborators of the organization core: they are registered here and
// their account status gates every membership change.
package users

import (
	"context"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/audit"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// ErrUserDoesNotExist is returned when the user acted upon does not exist.
var ErrUserDoesNotExist = errors.NotFound("user does not exist").WithCode("ErrUserDoesNotExist")

// RegisterInput is the input of Register.
type RegisterInput struct {
	Username string
}

// Register creates a new active user.
func Register(ctx context.Context, tx database.Transaction, in RegisterInput) (*types.User, error) {
	fields := &types.UserFields{Username: &in.Username}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info, err := tx.CreateUserInfo(ctx, database.NewUserInfo(in.Username, tx.Now()))
	if err != nil {
		return nil, err
	}

	return info.ToUser(), nil
}

// RegisterTx runs Register in its own transaction.
func RegisterTx(ctx context.Context, be *backend.Backend, in RegisterInput) (*types.User, error) {
	return audit.Execute(ctx, be, "users.Register", Register, in)
}

// SetStatusInput is the input of SetStatus.
type SetStatusInput struct {
	UserID types.ID
	Status types.UserStatus
}

// SetStatus changes the account status of the user.
func SetStatus(ctx context.Context, tx database.Transaction, in SetStatusInput) (*types.User, error) {
	if err := in.Status.Validate(); err != nil {
		return nil, err
	}

	info, err := database.Require(ErrUserDoesNotExist, func() (*database.UserInfo, error) {
		return tx.UpdateUserStatus(ctx, in.UserID, in.Status)
	})
	if err != nil {
		return nil, err
	}

	return info.ToUser(), nil
}

// SetStatusTx runs SetStatus in its own transaction.
func SetStatusTx(ctx context.Context, be *backend.Backend, in SetStatusInput) (*types.User, error) {
	return audit.Execute(ctx, be, "users.SetStatus", SetStatus, in)
}

// Find returns the user referred to by ref, which is either an ID or a
// username.
func Find(ctx context.Context, tx database.Transaction, ref string) (*types.User, error) {
	info, err := find(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	return info.ToUser(), nil
}

// FindTx runs Find in its own transaction.
func FindTx(ctx context.Context, be *backend.Backend, ref string) (*types.User, error) {
	return audit.Execute(ctx, be, "users.Find", Find, ref)
}

// List returns all users ordered by username.
func List(ctx context.Context, tx database.Transaction, _ struct{}) ([]*types.User, error) {
	infos, err := tx.ListUserInfos(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*types.User, 0, len(infos))
	for _, info := range infos {
		users = append(users, info.ToUser())
	}
	return users, nil
}

// ListTx runs List in its own transaction.
func ListTx(ctx context.Context, be *backend.Backend) ([]*types.User, error) {
	return audit.Execute(ctx, be, "users.List", List, struct{}{})
}

// FindActive returns the user of the given ID if it exists and may act.
func FindActive(ctx context.Context, tx database.Transaction, id types.ID) (*database.UserInfo, error) {
	info, err := database.Require(ErrUserDoesNotExist, func() (*database.UserInfo, error) {
		return tx.FindUserInfoByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if err := info.EnsureIsActive(); err != nil {
		return nil, err
	}

	return info, nil
}

func find(ctx context.Context, tx database.Transaction, ref string) (*database.UserInfo, error) {
	return database.Require(ErrUserDoesNotExist, func() (*database.UserInfo, error) {
		if id := types.ID(ref); id.Validate() == nil {
			info, err := tx.FindUserInfoByID(ctx, id)
			if err == nil || !errors.IsNotFound(err) {
				return info, err
			}
		}
		return tx.FindUserInfoByName(ctx, ref)
	})
}
