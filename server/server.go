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

// Package server provides the orgkeeper process which ties together the
// backend, the housekeeping loop and the profiling server.
package server

import (
	gosync "sync"

	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/logging"
	"github.com/yorkie-team/orgkeeper/server/profiling"
	"github.com/yorkie-team/orgkeeper/server/profiling/prometheus"
)

// Orgkeeper is an orgkeeper process. It owns the backend the use cases run
// against and the background services around it.
type Orgkeeper struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Orgkeeper.
func New(conf *Config, opts ...backend.Option) (*Orgkeeper, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	if conf.Logging != nil {
		logging.SetFile(conf.Logging)
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(
		conf.Backend,
		conf.Mongo,
		conf.Housekeeping,
		metrics,
		opts...,
	)
	if err != nil {
		return nil, err
	}

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Orgkeeper{
		conf:            conf,
		backend:         be,
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Backend returns the backend of this instance.
func (o *Orgkeeper) Backend() *backend.Backend {
	return o.backend
}

// Start starts the housekeeping loop and the profiling server.
func (o *Orgkeeper) Start() error {
	o.lock.Lock()
	defer o.lock.Unlock()

	if err := o.backend.Start(); err != nil {
		return err
	}

	if o.profilingServer != nil {
		if err := o.profilingServer.Start(); err != nil {
			return err
		}
	}

	return nil
}

// Shutdown shuts down this orgkeeper instance.
func (o *Orgkeeper) Shutdown(graceful bool) error {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.shutdown {
		return nil
	}

	if o.profilingServer != nil {
		o.profilingServer.Shutdown(graceful)
	}

	if err := o.backend.Shutdown(); err != nil {
		return err
	}

	close(o.shutdownCh)
	o.shutdown = true
	return nil
}

// ShutdownCh returns the shutdown channel.
func (o *Orgkeeper) ShutdownCh() <-chan struct{} {
	return o.shutdownCh
}
