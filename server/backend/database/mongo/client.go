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

// Package mongo implements database interfaces using MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	gotime "time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/logging"
)

const (
	// StatusKey is the key of the status field.
	StatusKey = "status"
)

// Client is a client that connects to Mongo DB and reads or saves orgkeeper
// data. Transactions need a replica set or a sharded cluster.
type Client struct {
	config *Config
	client *mongo.Client
	clock  database.Clock
}

// Option configures a Client.
type Option func(*Client)

// WithClock makes the client stamp transactions with the given clock.
func WithClock(clock database.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config, opts ...Option) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ParseConnectionTimeout())
	defer cancel()

	clientOptions := options.Client().ApplyURI(conf.ConnectionURI)

	if conf.MonitoringEnabled {
		threshold, err := gotime.ParseDuration(conf.MonitoringSlowQueryThreshold)
		if err != nil {
			return nil, fmt.Errorf("parse slow query threshold: %w", err)
		}

		monitor := NewQueryMonitor(&MonitorConfig{
			Enabled:            conf.MonitoringEnabled,
			SlowQueryThreshold: threshold,
		})

		clientOptions.SetMonitor(monitor.CreateCommandMonitor())
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingTimeout := conf.ParsePingTimeout()
	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.Database)); err != nil {
		return nil, err
	}

	logging.DefaultLogger().Infof("MongoDB connected, URI: %s, DB: %s", conf.ConnectionURI, conf.Database)

	c := &Client{
		config: conf,
		client: client,
		clock:  gotime.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	return nil
}

// RunInTransaction runs fn inside one session transaction. The transaction
// is committed when fn returns nil and aborted otherwise. It is not retried
// on transient errors: the caller sees them.
func (c *Client) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx database.Transaction) error,
) error {
	session, err := c.client.StartSession()
	if err != nil {
		return database.Persistence("start session", err)
	}
	defer session.EndSession(context.Background())

	if err := session.StartTransaction(); err != nil {
		return database.Persistence("start transaction", err)
	}

	tx := &Txn{
		db:  c.client.Database(c.config.Database),
		now: c.clock().UTC().Truncate(gotime.Millisecond),
	}
	sessCtx := mongo.NewSessionContext(ctx, session)
	if err := fn(sessCtx, tx); err != nil {
		if abortErr := session.AbortTransaction(context.Background()); abortErr != nil {
			logging.From(ctx).Warnf("abort transaction: %v", abortErr)
		}
		return err
	}

	if err := session.CommitTransaction(sessCtx); err != nil {
		return mapError("commit transaction", err, nil)
	}

	return nil
}

// mapError turns a driver error into a store error. A duplicate key becomes
// duplicate when it is given. Anything else becomes a persistence failure.
func mapError(op string, err error, duplicate error) error {
	if duplicate != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, duplicate)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.Persistence(op, err)
}

func newID() types.ID {
	return types.ID(bson.NewObjectID().Hex())
}
