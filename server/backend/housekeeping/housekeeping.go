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

// Package housekeeping provides the housekeeping service. The housekeeping
// service periodically flips PENDING invitations past their deadline to
// EXPIRED.
package housekeeping

import (
	"context"
	"time"

	"github.com/yorkie-team/orgkeeper/server/backend/background"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/logging"
	"github.com/yorkie-team/orgkeeper/server/profiling/prometheus"
)

const expireInvitationsTask = "housekeeping.expireInvitations"

// Housekeeping is the housekeeping service.
type Housekeeping struct {
	database   database.Database
	background *background.Background
	metrics    *prometheus.Metrics

	interval              time.Duration
	invitationExpiryLimit int

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a new housekeeping instance. metrics may be nil.
func New(
	conf *Config,
	db database.Database,
	bg *background.Background,
	metrics *prometheus.Metrics,
) (*Housekeeping, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	interval, err := conf.ParseInterval()
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())

	return &Housekeeping{
		database:   db,
		background: bg,
		metrics:    metrics,

		interval:              interval,
		invitationExpiryLimit: conf.InvitationExpiryLimit,

		ctx:        ctx,
		cancelFunc: cancelFunc,
	}, nil
}

// Start starts the housekeeping loop in the background.
func (h *Housekeeping) Start() error {
	h.background.AttachGoroutine(h.run, expireInvitationsTask)
	return nil
}

// Stop stops the housekeeping loop.
func (h *Housekeeping) Stop() error {
	h.cancelFunc()

	return nil
}

// run is the housekeeping loop. It stops when either the housekeeping or the
// background is closed.
func (h *Housekeeping) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-h.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if _, err := h.ExpireInvitations(ctx); err != nil && ctx.Err() == nil {
			logging.From(ctx).Error(err)
		}

		select {
		case <-time.After(h.interval):
		case <-ctx.Done():
			return
		}
	}
}

// ExpireInvitations flips every stale PENDING invitation to EXPIRED, one
// batch per transaction, and returns how many it changed.
func (h *Housekeeping) ExpireInvitations(ctx context.Context) (int, error) {
	start := time.Now()

	total := 0
	for {
		expired, err := database.RunInTransaction(ctx, h.database, func(
			ctx context.Context,
			tx database.Transaction,
		) (int, error) {
			return tx.ExpirePendingInvitations(ctx, tx.Now(), h.invitationExpiryLimit)
		})
		if err != nil {
			return total, err
		}

		total += expired
		if h.metrics != nil {
			h.metrics.AddExpiredInvitations(expired)
		}
		if expired < h.invitationExpiryLimit {
			break
		}
	}

	if total > 0 {
		logging.From(ctx).Infof("HSKP: expired invitations %d, %s", total, time.Since(start))
	}

	return total, nil
}
