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

// MappingRule is one declarative instruction for extracting one canonical
// field from an external payload. TargetField may be the reserved residual
// target, which routes the value into the record's residual data instead of
// a flat column. Rules are applied in Position order; when two rules map to
// the same non-residual target, the later rule wins.
type MappingRule struct {
	RuleId        string `json:"rule_id,omitempty"`
	DivisionId    string `json:"division_id"`
	SourceFieldId string `json:"source_field_id"` // external field id, may contain dots, e.g. "1.3"
	TargetTable   string `json:"target_table"`
	TargetField   string `json:"target_field"`
	ValueType     string `json:"value_type"` // text, date, number, json
	Label         string `json:"label,omitempty"`
	Active        bool   `json:"active"`
	Position      int    `json:"position,omitempty"`
	CreatedAt     int64  `json:"created_at,omitempty"`
	UpdatedAt     int64  `json:"updated_at,omitempty"`
}

// CustomFieldDeclaration declares an additional free-form field recognized
// for a set of divisions by its raw payload field name. Custom fields only
// ever populate residual data, never flat columns, and take precedence over
// synthesized mapping keys on residual key collisions.
type CustomFieldDeclaration struct {
	FieldId     string   `json:"field_id,omitempty"`
	FieldName   string   `json:"field_name"`
	DivisionIds []string `json:"division_ids"`
	Active      bool     `json:"active"`
	CreatedAt   int64    `json:"created_at,omitempty"`
}
