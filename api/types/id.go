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

// Package types provides the types that cross the boundary of the use cases:
// IDs, enumerations and the plain result structs returned to callers.
package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/yorkie-team/orgkeeper/pkg/errors"
)

var (
	// ErrInvalidID is returned when the given ID is not an ObjectID.
	ErrInvalidID = errors.InvalidArgument("invalid ID").WithCode("ErrInvalidID")
)

// ID represents ID of entity. IDs are generated by the store as the hex
// representation of a 12-byte ObjectID.
type ID string

// String returns a string representation of this ID.
func (id ID) String() string {
	return string(id)
}

// Validate returns error if this ID is invalid.
func (id ID) Validate() error {
	b, err := hex.DecodeString(id.String())
	if err != nil || len(b) != 12 {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}

	return nil
}

// IsEmpty returns true if the ID is not set.
func (id ID) IsEmpty() bool {
	return id == ""
}

// JoinIDs joins the given IDs with a comma.
func JoinIDs(ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
