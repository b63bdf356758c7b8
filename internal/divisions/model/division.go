/*
 * Copyright (c) 2025, OpenAdmissions (https://openadmissions.org).
 *
 * OpenAdmissions licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

// DivisionConfig identifies one division (tenant) and the signals used to
// classify untagged submissions to it. The external FormId is a strong
// signal: an exact match decides classification outright. SignalFields are
// payload field ids whose presence counts toward the division's score.
// The first-registered division acts as the classification default.
type DivisionConfig struct {
	DivisionId   string   `json:"division_id,omitempty"`
	Name         string   `json:"name"`
	FormId       string   `json:"form_id,omitempty"`
	SignalFields []string `json:"signal_fields,omitempty"`
	Active       bool     `json:"active"`
	CreatedAt    int64    `json:"created_at,omitempty"`
	UpdatedAt    int64    `json:"updated_at,omitempty"`
}
