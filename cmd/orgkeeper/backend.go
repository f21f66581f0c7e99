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
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"

	"github.com/yorkie-team/orgkeeper/api/types"
	"github.com/yorkie-team/orgkeeper/server"
	"github.com/yorkie-team/orgkeeper/server/backend"
	"github.com/yorkie-team/orgkeeper/server/logging"
	"github.com/yorkie-team/orgkeeper/server/users"
)

var (
	// ErrActorRequired is returned when a command needs an actor and
	// "--actor" is not given.
	ErrActorRequired = errors.New(`"--actor" flag is required`)
)

var (
	flagConfPath string
	flagLogLevel string
	flagActor    string

	mongoConnectionURI string
	mongoDatabase      string
)

// loadConfig builds the configuration from the flags. If a config file is
// given, command-line arguments are overwritten by it.
func loadConfig() (*server.Config, error) {
	conf := server.NewConfig()

	if uri := viper.GetString("mongo-connection-uri"); uri != "" {
		conf.Mongo = server.NewMongoConfig()
		conf.Mongo.ConnectionURI = uri
		if database := viper.GetString("mongo-database"); database != "" {
			conf.Mongo.Database = database
		}
	}

	if path := viper.GetString("config"); path != "" {
		parsed, err := server.NewConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		conf = parsed
	}

	return conf, nil
}

// withBackend opens the configured backend, runs fn against it and shuts the
// backend down. Background services are not started.
func withBackend(fn func(ctx context.Context, be *backend.Backend) error) (err error) {
	if err := logging.SetLogLevel(flagLogLevel); err != nil {
		return err
	}

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	conf.Profiling = nil

	o, err := server.New(conf)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, o.Shutdown(true))
	}()

	return fn(context.Background(), o.Backend())
}

// resolveUser returns the ID of the user referred to by ref, an ID or a
// username.
func resolveUser(ctx context.Context, be *backend.Backend, ref string) (types.ID, error) {
	user, err := users.FindTx(ctx, be, ref)
	if err != nil {
		return "", fmt.Errorf("resolve user %q: %w", ref, err)
	}
	return user.ID, nil
}

// resolveActor returns the ID of the user given with "--actor" or
// ORGKEEPER_ACTOR.
func resolveActor(ctx context.Context, be *backend.Backend) (types.ID, error) {
	actor := viper.GetString("actor")
	if actor == "" {
		return "", ErrActorRequired
	}
	return resolveUser(ctx, be, actor)
}

func newTable(header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	tw.AppendHeader(header)
	return tw
}

func render(out io.Writer, tw table.Writer) error {
	_, err := fmt.Fprintln(out, tw.Render())
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
