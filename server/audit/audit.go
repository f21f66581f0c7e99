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

// Package audit couples use cases with the audit trail. An audited use case
// appends exactly one event in the same transaction as its writes, so the
// event is committed if and only if the use case is.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/pkg/errors"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/backend/database"
	"github.com/yorkie-team/orgkeeper/server/logging"
)

// ErrMissingAuditEvent is returned when an event builder produces no event.
var ErrMissingAuditEvent = errors.Internal("audit event missing").WithCode("ErrMissingAuditEvent")

// UseCase is a unit of business logic running inside a transaction.
type UseCase[I, R any] func(ctx context.Context, tx database.Transaction, in I) (R, error)

// EventBuilder derives the audit event of a successful use case from its
// input and result.
type EventBuilder[I, R any] func(in I, out R) *database.AuditEventInfo

// With returns a use case that runs uc and then appends the event built from
// its result. Nothing is appended when uc fails, and a failed append fails
// the returned use case.
func With[I, R any](uc UseCase[I, R], build EventBuilder[I, R]) UseCase[I, R] {
	return func(ctx context.Context, tx database.Transaction, in I) (R, error) {
		out, err := uc(ctx, tx, in)
		if err != nil {
			return out, err
		}

		event := build(in, out)
		if event == nil {
			var zero R
			return zero, ErrMissingAuditEvent
		}
		if _, err := tx.AppendAuditEventInfo(ctx, event); err != nil {
			var zero R
			return zero, fmt.Errorf("append audit event %s: %w", event.Action, err)
		}

		return out, nil
	}
}

// Execute runs uc in a new transaction of the backend. The transaction is
// committed when uc succeeds and rolled back otherwise; it is never retried.
func Execute[I, R any](
	ctx context.Context,
	be *backend.Backend,
	name string,
	uc UseCase[I, R],
	in I,
) (R, error) {
	logger := logging.From(ctx).With("op", xid.New().String())
	ctx = logging.With(ctx, logger)

	var appended []types.AuditAction
	start := time.Now()
	out, err := database.RunInTransaction(ctx, be.DB, func(
		ctx context.Context,
		tx database.Transaction,
	) (R, error) {
		appended = appended[:0]
		return uc(ctx, &recorder{Transaction: tx, appended: &appended}, in)
	})
	duration := time.Since(start)

	logging.LogUnit(logger, name, duration, err)
	if be.Metrics != nil {
		be.Metrics.AddUnitHandled(name, codeOf(err))
		be.Metrics.ObserveUnitDurationSeconds(name, duration.Seconds())
		if err == nil {
			for _, action := range appended {
				be.Metrics.AddAuditEvent(action)
			}
		}
	}

	return out, err
}

// codeOf returns the code a unit result is counted under.
func codeOf(err error) string {
	if err == nil {
		return ""
	}
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	return "ErrUnknown"
}

// recorder remembers the actions appended through the transaction so they
// can be counted once the transaction commits.
type recorder struct {
	database.Transaction
	appended *[]types.AuditAction
}

// AppendAuditEventInfo appends the event and records its action.
func (r *recorder) AppendAuditEventInfo(
	ctx context.Context,
	info *database.AuditEventInfo,
) (*database.AuditEventInfo, error) {
	appended, err := r.Transaction.AppendAuditEventInfo(ctx, info)
	if err != nil {
		return nil, err
	}
	*r.appended = append(*r.appended, appended.Action)
	return appended, nil
}
