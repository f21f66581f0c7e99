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

package types

import (
	"github.com/yorkie-team/orgkeeper/internal/validation"
)

// UserFields is a set of fields used to register a user.
type UserFields struct {
	// Username is the name of the user.
	Username *string `bson:"username" validate:"required,min=2,max=30,trimmed,single_line"`
}

// Validate validates the UserFields.
func (i *UserFields) Validate() error {
	return invalidFields(validation.ValidateStruct(i))
}
