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

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/internal/version"
	"github.com/yorkie-team/orgkeeper/server/users"
)

// execute runs the root command with args against a fresh memory database
// and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagConfPath = ""
	flagLogLevel = "warn"
	flagActor = ""
	mongoConnectionURI = ""
	mongoDatabase = ""

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Run("register user test", func(t *testing.T) {
		out, err := execute(t, "user", "register", "alice")
		require.NoError(t, err)
		assert.NoError(t, types.ID(strings.TrimSpace(out)).Validate())
	})

	t.Run("invalid username test", func(t *testing.T) {
		_, err := execute(t, "user", "register", " alice")
		assert.Error(t, err)
	})

	t.Run("list users test", func(t *testing.T) {
		out, err := execute(t, "user", "ls")
		require.NoError(t, err)
		assert.Contains(t, out, "USERNAME")
	})

	t.Run("actor required test", func(t *testing.T) {
		_, err := execute(t, "org", "create", "acme")
		assert.ErrorIs(t, err, ErrActorRequired)
	})

	t.Run("actor from environment test", func(t *testing.T) {
		t.Setenv("ORGKEEPER_ACTOR", "nobody")
		_, err := execute(t, "org", "ls")
		assert.ErrorIs(t, err, users.ErrUserDoesNotExist)
	})

	t.Run("unknown actor test", func(t *testing.T) {
		_, err := execute(t, "--actor", "nobody", "org", "ls")
		assert.ErrorIs(t, err, users.ErrUserDoesNotExist)
	})

	t.Run("invalid task status test", func(t *testing.T) {
		_, err := execute(t, "--actor", "alice", "task", "status", "org", "task", "DONE")
		assert.ErrorIs(t, err, types.ErrInvalidTaskStatus)
	})

	t.Run("missing config file test", func(t *testing.T) {
		_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nowhere.yml"), "user", "ls")
		assert.Error(t, err)
	})

	t.Run("version test", func(t *testing.T) {
		out, err := execute(t, "version", "-o", "json")
		require.NoError(t, err)

		var info types.VersionInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, version.Version, info.Version)

		_, err = execute(t, "version", "-o", "xml")
		assert.Error(t, err)
	})
}
