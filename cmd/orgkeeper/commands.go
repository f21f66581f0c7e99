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

// Package main is the entry point of the orgkeeper CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "orgkeeper",
	Short: "Organizations, memberships, tasks and invitations with an audit trail",
	Long: "orgkeeper operates on the configured database. Without a MongoDB " +
		"connection the in-memory database is used and state lives only as long " +
		"as the command.",
	SilenceUsage: true,
}

// Run executes CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"warn",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	rootCmd.PersistentFlags().StringVar(
		&mongoConnectionURI,
		"mongo-connection-uri",
		"",
		"MongoDB's connection URI",
	)
	rootCmd.PersistentFlags().StringVar(
		&mongoDatabase,
		"mongo-database",
		"",
		"orgkeeper's database name in MongoDB",
	)
	rootCmd.PersistentFlags().StringVar(
		&flagActor,
		"actor",
		"",
		"ID or username of the user performing the command",
	)

	// Persistent flags fall back to ORGKEEPER_* environment variables, e.g.
	// ORGKEEPER_ACTOR or ORGKEEPER_MONGO_CONNECTION_URI.
	viper.SetEnvPrefix("orgkeeper")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"config", "actor", "mongo-connection-uri", "mongo-database"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		newUserCmd(),
		newOrgCmd(),
		newMemberCmd(),
		newTaskCmd(),
		newInvitationCmd(),
		newAuditCmd(),
		newHousekeepingCmd(),
		newVersionCmd(),
	)
}
