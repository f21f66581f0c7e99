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

// TaskFields holds the editable text of a task. Nil fields are left
// untouched on update.
type TaskFields struct {
	// Title is the title of the task.
	Title *string `bson:"title,omitempty" validate:"omitnil,min=1,max=100,trimmed,single_line"`

	// Description is the description of the task.
	Description *string `bson:"description,omitempty" validate:"omitnil,max=1000,printable"`
}

// Validate validates the TaskFields.
func (i *TaskFields) Validate() error {
	if i.Title == nil && i.Description == nil {
		return ErrEmptyFields
	}

	return invalidFields(validation.ValidateStruct(i))
}

// NewTitle validates a task title on its own.
func NewTitle(title string) (string, error) {
	if err := validation.ValidateValue(title, "required,max=100,trimmed,single_line"); err != nil {
		return "", invalidFields(&validation.StructError{Violations: []validation.Violation{err.(validation.Violation)}})
	}
	return title, nil
}

// NewDescription validates a task description on its own.
func NewDescription(description string) (string, error) {
	if err := validation.ValidateValue(description, "max=1000,printable"); err != nil {
		return "", invalidFields(&validation.StructError{Violations: []validation.Violation{err.(validation.Violation)}})
	}
	return description, nil
}
