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

// Payload is a flat mapping of external form keys to scalar or structured
// values, exactly as received from the form system webhook.
type Payload map[string]interface{}

// NormalizedRecord is the canonical output of normalizing one submission.
// It is constructed once per payload and immutable after the normalizer
// returns it; ownership passes to the persistence layer.
type NormalizedRecord struct {
	RecordId     string                 `json:"record_id"`
	DivisionId   string                 `json:"division_id"`
	SubmittedAt  int64                  `json:"submitted_at"`
	Status       string                 `json:"status"`
	Fields       map[string]interface{} `json:"fields"`
	ResidualData string                 `json:"residual_data,omitempty"` // JSON object, empty when nothing residual
}
