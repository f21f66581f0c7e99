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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/internal/version"
)

const (
	namespace   = "orgkeeper"
	unitLabel   = "unit"
	codeLabel   = "code"
	actionLabel = "action"
	taskLabel   = "task_type"
)

// Metrics manages the metric information that orgkeeper is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	unitHandledTotal    *prometheus.CounterVec
	unitDurationSeconds *prometheus.HistogramVec
	auditEventsTotal    *prometheus.CounterVec

	housekeepingExpiredInvitationsTotal prometheus.Counter
	backgroundGoroutinesTotal           *prometheus.GaugeVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		unitHandledTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "unit",
			Name:      "handled_total",
			Help:      "Total number of units of work completed, regardless of success or failure.",
		}, []string{unitLabel, codeLabel}),
		unitDurationSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "unit",
			Name:      "duration_seconds",
			Help:      "The time a unit of work spent inside its transaction.",
		}, []string{unitLabel}),
		auditEventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "events_total",
			Help:      "The total count of committed audit events.",
		}, []string{actionLabel}),
		housekeepingExpiredInvitationsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "housekeeping",
			Name:      "expired_invitations_total",
			Help:      "The total count of pending invitations flipped to EXPIRED.",
		}),
		backgroundGoroutinesTotal: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "goroutines_total",
			Help:      "The total number of goroutines attached by a particular background task.",
		}, []string{taskLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddUnitHandled adds the number of units of work completed with the given
// error code. Successful units are counted with the code "OK".
func (m *Metrics) AddUnitHandled(unit, code string) {
	if code == "" {
		code = "OK"
	}
	m.unitHandledTotal.With(prometheus.Labels{
		unitLabel: unit,
		codeLabel: code,
	}).Inc()
}

// ObserveUnitDurationSeconds adds an observation for the duration of a unit.
func (m *Metrics) ObserveUnitDurationSeconds(unit string, seconds float64) {
	m.unitDurationSeconds.With(prometheus.Labels{
		unitLabel: unit,
	}).Observe(seconds)
}

// AddAuditEvent adds the number of committed audit events of the action.
func (m *Metrics) AddAuditEvent(action types.AuditAction) {
	m.auditEventsTotal.With(prometheus.Labels{
		actionLabel: action.String(),
	}).Inc()
}

// AddExpiredInvitations adds the number of invitations expired by
// housekeeping.
func (m *Metrics) AddExpiredInvitations(count int) {
	m.housekeepingExpiredInvitationsTotal.Add(float64(count))
}

// AddBackgroundGoroutines adds the number of goroutines attached by a particular background task.
func (m *Metrics) AddBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskLabel: taskType,
	}).Inc()
}

// RemoveBackgroundGoroutines removes the number of goroutines attached by a particular background task.
func (m *Metrics) RemoveBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskLabel: taskType,
	}).Dec()
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
