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

package authz

import (
	"context"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

var (
	// ErrActorNotAMember is returned when the actor has no membership in the
	// organization.
	ErrActorNotAMember = errors.NotFound("actor is not a member").WithCode("ErrActorNotAMember")

	// ErrTargetNotAMember is returned when the target has no membership in
	// the organization.
	ErrTargetNotAMember = errors.NotFound("target is not a member").WithCode("ErrTargetNotAMember")
)

// FindActor returns the membership of the acting user.
func FindActor(
	ctx context.Context,
	tx database.Transaction,
	orgID types.ID,
	actorID types.ID,
) (*database.MemberInfo, error) {
	return database.Require(ErrActorNotAMember, func() (*database.MemberInfo, error) {
		return tx.FindMemberInfo(ctx, orgID, actorID)
	})
}

// FindTarget returns the membership of the user acted upon.
func FindTarget(
	ctx context.Context,
	tx database.Transaction,
	orgID types.ID,
	targetID types.ID,
) (*database.MemberInfo, error) {
	return database.Require(ErrTargetNotAMember, func() (*database.MemberInfo, error) {
		return tx.FindMemberInfo(ctx, orgID, targetID)
	})
}
