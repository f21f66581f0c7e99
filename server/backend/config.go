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

package backend

import (
	"fmt"
	"os"
	"time"
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// InvitationTTL is how long an invitation stays answerable. Default is
	// "168h".
	InvitationTTL string `yaml:"InvitationTTL"`

	// Hostname is the hostname of the process. It is used by logs.
	Hostname string `yaml:"Hostname"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	ttl, err := time.ParseDuration(c.InvitationTTL)
	if err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--invitation-ttl" flag: %w`,
			c.InvitationTTL,
			err,
		)
	}
	if ttl <= 0 {
		return fmt.Errorf(
			`invalid argument "%s" for "--invitation-ttl" flag: must be positive`,
			c.InvitationTTL,
		)
	}

	return nil
}

// ParseInvitationTTL returns the invitation TTL.
func (c *Config) ParseInvitationTTL() time.Duration {
	result, err := time.ParseDuration(c.InvitationTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse invitation ttl: %v\n", err)
		os.Exit(1)
	}

	return result
}
