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

// VersionInfo represents the version of the running orgkeeper binary.
type VersionInfo struct {
	// Version is the orgkeeper version.
	Version string `json:"version" yaml:"version"`

	// GoVersion is the version of Go the binary was built with.
	GoVersion string `json:"goVersion" yaml:"goVersion"`

	// BuildDate is the date the binary was built.
	BuildDate string `json:"buildDate" yaml:"buildDate"`
}
