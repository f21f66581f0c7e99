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

package logging

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/yorkie-team/orgkeeper/pkg/errors"
)

// Level is the severity a unit of work result is logged with.
type Level int

// Below are the levels, from quietest to loudest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	}
	return "warn"
}

// LevelOf classifies the error of a unit of work. Validation and lookup
// failures are routine, authorization and state conflicts are worth a look,
// and persistence failures need attention.
func LevelOf(err error) Level {
	if err == nil {
		return LevelDebug
	}
	if errors.Is(err, context.Canceled) {
		return LevelDebug
	}

	switch pkgerrors.StatusOf(err) {
	case pkgerrors.ErrCodeInvalidArgument, pkgerrors.ErrCodeNotFound, pkgerrors.ErrCodeAlreadyExists:
		return LevelInfo
	case pkgerrors.ErrCodePermissionDenied, pkgerrors.ErrCodeFailedPrecondition:
		return LevelWarn
	case pkgerrors.ErrCodeInternal:
		return LevelError
	}

	return LevelError
}

// LogUnit logs the outcome of a unit of work.
func LogUnit(logger Logger, name string, duration time.Duration, err error) {
	if err == nil {
		logger.Debugf("UNIT: %q %s", name, duration)
		return
	}

	args := []interface{}{"code", pkgerrors.CodeOf(err)}
	for k, v := range pkgerrors.Metadata(err) {
		args = append(args, k, v)
	}

	const template = "UNIT: %q %s => %q"
	switch LevelOf(err) {
	case LevelDebug:
		logger.With(args...).Debugf(template, name, duration, err)
	case LevelInfo:
		logger.With(args...).Infof(template, name, duration, err)
	case LevelWarn:
		logger.With(args...).Warnf(template, name, duration, err)
	default:
		logger.With(args...).Errorf(template, name, duration, err)
	}
}
