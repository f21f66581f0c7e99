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

// Package memory implements the database interface using in-memory database.
package memory

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/hashicorp/go-memdb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
)

// DB is an in-memory database for testing or temporarily.
type DB struct {
	db    *memdb.MemDB
	clock database.Clock
}

// Option configures a DB.
type Option func(*DB)

// WithClock makes the DB stamp transactions with the given clock.
func WithClock(clock database.Clock) Option {
	return func(d *DB) {
		d.clock = clock
	}
}

// New returns a new in-memory database.
func New(opts ...Option) (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	d := &DB{
		db:    memDB,
		clock: gotime.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// RunInTransaction runs fn inside one write transaction. memdb allows a
// single writer at a time, so units of work are serialized. fn must not
// start another transaction on the same DB.
func (d *DB) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx database.Transaction) error,
) error {
	tx := &Txn{
		txn: d.db.Txn(true),
		now: d.clock(),
	}
	defer tx.txn.Abort()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	tx.txn.Commit()
	return nil
}

func newID() types.ID {
	return types.ID(bson.NewObjectID().Hex())
}
