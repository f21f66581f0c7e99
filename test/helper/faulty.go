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

package helper

import (
	"context"

	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// FaultyDatabase wraps a database and fails every audit append with
// AppendErr. It counts the appends attempted.
type FaultyDatabase struct {
	database.Database
	AppendErr error
	Appends   int
}

// RunInTransaction runs fn with a transaction whose audit appends fail.
func (d *FaultyDatabase) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx database.Transaction) error,
) error {
	return d.Database.RunInTransaction(ctx, func(ctx context.Context, tx database.Transaction) error {
		return fn(ctx, &faultyTx{Transaction: tx, db: d})
	})
}

type faultyTx struct {
	database.Transaction
	db *FaultyDatabase
}

func (tx *faultyTx) AppendAuditEventInfo(
	ctx context.Context,
	info *database.AuditEventInfo,
) (*database.AuditEventInfo, error) {
	tx.db.Appends++
	if tx.db.AppendErr != nil {
		return nil, tx.db.AppendErr
	}
	return tx.Transaction.AppendAuditEventInfo(ctx, info)
}
