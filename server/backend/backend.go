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

// Package backend provides the backend implementation of orgkeeper. This
// package is responsible for managing the database and other resources the
// use cases run against.
package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/yorkie-team/orgkeeper/server/backend/background"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	memdb "github.com/yorkie-team/orgkeeper/server/backend/database/memory"
	"github.com/yorkie-team/orgkeeper/server/backend/database/mongo"
	"github.com/yorkie-team/orgkeeper/server/backend/housekeeping"
	"github.com/yorkie-team/orgkeeper/server/logging"
	"github.com/yorkie-team/orgkeeper/server/profiling/prometheus"
)

// Backend manages orgkeeper's backend such as Database and Housekeeping.
type Backend struct {
	Config *Config

	// Background is used to manage background tasks.
	Background *background.Background
	// Housekeeping is used to expire stale invitations.
	Housekeeping *housekeeping.Housekeeping

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the database instance.
	DB database.Database
}

// Option configures a Backend.
type Option func(*options)

type options struct {
	clock database.Clock
}

// WithClock sets the clock the database stamps transactions with.
func WithClock(clock database.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	housekeepingConf *housekeeping.Config,
	metrics *prometheus.Metrics,
	opts ...Option,
) (*Backend, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// 01. Build the hostname with the hostname of the current machine if it
	// is not given.
	if conf.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("os.Hostname: %w", err)
		}
		conf.Hostname = hostname
	}

	// 02. Create the database instance. If the MongoDB configuration is given,
	// create a MongoDB instance. Otherwise, create a memory database instance.
	var db database.Database
	var err error
	if mongoConf != nil {
		var mongoOpts []mongo.Option
		if o.clock != nil {
			mongoOpts = append(mongoOpts, mongo.WithClock(o.clock))
		}
		db, err = mongo.Dial(mongoConf, mongoOpts...)
	} else {
		var memOpts []memdb.Option
		if o.clock != nil {
			memOpts = append(memOpts, memdb.WithClock(o.clock))
		}
		db, err = memdb.New(memOpts...)
	}
	if err != nil {
		return nil, err
	}

	// 03. Create the background manager and the housekeeping instance.
	bg := background.New(metrics)
	housekeeper, err := housekeeping.New(housekeepingConf, db, bg, metrics)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	dbInfo := "memory"
	if mongoConf != nil {
		dbInfo = mongoConf.ConnectionURI
	}
	logging.DefaultLogger().Infof("backend created: db: %s", dbInfo)

	return &Backend{
		Config: conf,

		Background:   bg,
		Housekeeping: housekeeper,

		Metrics: metrics,
		DB:      db,
	}, nil
}

// Start starts the background services of the backend.
func (b *Backend) Start() error {
	if err := b.Housekeeping.Start(); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("backend started")
	return nil
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	var errs []error

	if err := b.Housekeeping.Stop(); err != nil {
		errs = append(errs, err)
	}

	b.Background.Close()

	if err := b.DB.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}
