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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/yorkie-team/orgkeeper/pkg/errors"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Level
	}{
		{"nil error", nil, LevelDebug},
		{"context canceled", context.Canceled, LevelDebug},
		{"invalid argument", pkgerrors.InvalidArgument("bad title"), LevelInfo},
		{"not found", pkgerrors.NotFound("task not found"), LevelInfo},
		{"already exists", pkgerrors.AlreadyExists("member already exists"), LevelInfo},
		{"permission denied", pkgerrors.PermissionDenied("insufficient permissions"), LevelWarn},
		{"failed precondition", pkgerrors.FailedPrecond("task is completed"), LevelWarn},
		{"internal", pkgerrors.Internal("persistence failure"), LevelError},
		{"wrapped", fmt.Errorf("hire: %w", pkgerrors.PermissionDenied("no")), LevelWarn},
		{"plain error", errors.New("boom"), LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelOf(tt.err))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestContextLogger(t *testing.T) {
	logger := New("test", NewField("op", "1"))
	ctx := With(context.Background(), logger)
	assert.Same(t, logger, From(ctx))
	assert.NotNil(t, From(context.Background()))
}

func TestConfig(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{File: "orgkeeper.log", MaxSizeMB: 10}).Validate())
	assert.Error(t, (&Config{File: "orgkeeper.log", MaxBackups: -1}).Validate())
	assert.Error(t, SetLogLevel("verbose"))
}
