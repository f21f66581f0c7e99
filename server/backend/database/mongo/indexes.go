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

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yorkie-team/orgkeeper/api/types"
)

const (
	// ColUsers represents the users collection in the database.
	ColUsers = "users"
	// ColOrganizations represents the organizations collection in the database.
	ColOrganizations = "organizations"
	// ColMembers represents the members collection in the database.
	ColMembers = "members"
	// ColTasks represents the tasks collection in the database.
	ColTasks = "tasks"
	// ColInvitations represents the invitations collection in the database.
	ColInvitations = "invitations"
	// ColAuditEvents represents the audit events collection in the database.
	ColAuditEvents = "audit_events"
)

// Collections represents the list of all collections in the database.
var Collections = []string{
	ColUsers,
	ColOrganizations,
	ColMembers,
	ColTasks,
	ColInvitations,
	ColAuditEvents,
}

type collectionInfo struct {
	name    string
	indexes []mongo.IndexModel
}

// Below are names and indexes information of Collections that stores
// orgkeeper data.
var collectionInfos = []collectionInfo{
	{
		name: ColUsers,
		indexes: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "username", Value: int32(1)}},
			Options: options.Index().SetUnique(true),
		}},
	},
	{
		name: ColMembers,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "organization_id", Value: int32(1)},
				{Key: "user_id", Value: int32(1)},
			},
			Options: options.Index().SetUnique(true),
		}, {
			Keys: bson.D{{Key: "user_id", Value: int32(1)}},
		}},
	},
	{
		name: ColTasks,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "organization_id", Value: int32(1)},
				{Key: "created_at", Value: int32(1)},
			},
		}},
	},
	{
		name: ColInvitations,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "organization_id", Value: int32(1)},
				{Key: "invited_user_id", Value: int32(1)},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{StatusKey: string(types.InvitationPending)}),
		}, {
			Keys: bson.D{
				{Key: StatusKey, Value: int32(1)},
				{Key: "expired_at", Value: int32(1)},
			},
		}},
	},
	{
		name: ColAuditEvents,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "organization_id", Value: int32(1)},
				{Key: "created_at", Value: int32(1)},
			},
		}, {
			Keys: bson.D{
				{Key: "actor_id", Value: int32(1)},
				{Key: "created_at", Value: int32(1)},
			},
		}},
	},
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, info := range collectionInfos {
		_, err := db.Collection(info.name).Indexes().CreateMany(ctx, info.indexes)
		if err != nil {
			return fmt.Errorf("create indexes: %w", err)
		}
	}
	return nil
}
