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

package server_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/orgkeeper/server"
)

func TestNewConfigFromFile(t *testing.T) {
	t.Run("fail read config file test", func(t *testing.T) {
		conf := server.NewConfig()
		_, err := server.NewConfigFromFile("nowhere.yml")
		assert.Error(t, err)

		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)
		assert.Equal(t, server.DefaultInvitationTTL.String(), conf.Backend.InvitationTTL)
		assert.Equal(t, server.DefaultHousekeepingInvitationExpiryLimit, conf.Housekeeping.InvitationExpiryLimit)
		assert.Nil(t, conf.Mongo)
		assert.NoError(t, conf.Validate())
	})

	t.Run("read config file test", func(t *testing.T) {
		conf, err := server.NewConfigFromFile("config.sample.yml")
		require.NoError(t, err)
		assert.NoError(t, conf.Validate())

		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)

		interval, err := conf.Housekeeping.ParseInterval()
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultHousekeepingInterval, interval)
		assert.Equal(t, server.DefaultInvitationTTL, conf.Backend.ParseInvitationTTL())

		connTimeout, err := time.ParseDuration(conf.Mongo.ConnectionTimeout)
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultMongoConnectionTimeout, connTimeout)
		assert.Equal(t, server.DefaultMongoConnectionURI, conf.Mongo.ConnectionURI)
		assert.Equal(t, server.DefaultMongoDatabase, conf.Mongo.Database)
		assert.Equal(t, server.DefaultMongoPingTimeout, conf.Mongo.ParsePingTimeout())
	})

	t.Run("apply defaults to a partial file test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.yml")
		content := "Backend:\n  InvitationTTL: 24h\nMongo:\n  Database: custom\n" +
			"Logging:\n  File: orgkeeper.log\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		conf, err := server.NewConfigFromFile(path)
		require.NoError(t, err)
		assert.NoError(t, conf.Validate())

		assert.Equal(t, 24*time.Hour, conf.Backend.ParseInvitationTTL())
		assert.Equal(t, server.DefaultHousekeepingInterval.String(), conf.Housekeeping.Interval)
		assert.Equal(t, "custom", conf.Mongo.Database)
		assert.Equal(t, server.DefaultMongoConnectionURI, conf.Mongo.ConnectionURI)
		assert.Equal(t, server.DefaultLogMaxSizeMB, conf.Logging.MaxSizeMB)
		assert.Nil(t, conf.Profiling)
	})

	t.Run("invalid invitation ttl test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yml")
		require.NoError(t, os.WriteFile(path, []byte("Backend:\n  InvitationTTL: soon\n"), 0o600))

		conf, err := server.NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Error(t, conf.Validate())
	})
}
