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
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorkie-team/orgkeeper/server"
	"github.com/yorkie-team/orgkeeper/server/logging"
)

var (
	gracefulTimeout = 10 * time.Second
)

func newHousekeepingCmd() *cobra.Command {
	var (
		interval      time.Duration
		limit         int
		profiling     bool
		profilingPort int
		enablePprof   bool
	)

	cmd := &cobra.Command{
		Use:   "housekeeping [options]",
		Short: "Expire unanswered invitations periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := flagLogLevel
			if !cmd.Flags().Changed("log-level") {
				level = "info"
			}
			if err := logging.SetLogLevel(level); err != nil {
				return err
			}

			conf, err := loadConfig()
			if err != nil {
				return err
			}

			// Flags given explicitly take precedence over the config file.
			confPath := viper.GetString("config")
			if confPath == "" || cmd.Flags().Changed("housekeeping-interval") {
				conf.Housekeeping.Interval = interval.String()
			}
			if confPath == "" || cmd.Flags().Changed("housekeeping-invitation-expiry-limit") {
				conf.Housekeeping.InvitationExpiryLimit = limit
			}
			if !profiling {
				conf.Profiling = nil
			} else if conf.Profiling == nil || confPath == "" {
				conf.Profiling = server.NewConfig().Profiling
				conf.Profiling.Port = profilingPort
				conf.Profiling.EnablePprof = enablePprof
			}

			o, err := server.New(conf)
			if err != nil {
				return err
			}

			if err := o.Start(); err != nil {
				return err
			}

			if code := handleSignal(o); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(
		&interval,
		"housekeeping-interval",
		server.DefaultHousekeepingInterval,
		"housekeeping interval between housekeeping runs",
	)
	cmd.Flags().IntVar(
		&limit,
		"housekeeping-invitation-expiry-limit",
		server.DefaultHousekeepingInvitationExpiryLimit,
		"maximum number of invitations expired in one transaction",
	)
	cmd.Flags().BoolVar(
		&profiling,
		"profiling",
		false,
		"Serve metrics on the profiling port",
	)
	cmd.Flags().IntVar(
		&profilingPort,
		"profiling-port",
		server.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&enablePprof,
		"enable-pprof",
		false,
		"Enable runtime profiling data via HTTP server.",
	)

	return cmd
}

func handleSignal(o *server.Orgkeeper) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	select {
	case s := <-sigCh:
		sig = s
	case <-o.ShutdownCh():
		return 0
	}

	graceful := false
	if sig == syscall.SIGINT || sig == syscall.SIGTERM {
		graceful = true
	}

	gracefulCh := make(chan struct{})
	go func() {
		if err := o.Shutdown(graceful); err != nil {
			logging.DefaultLogger().Errorf("shutdown: %v", err)
			return
		}
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}
