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

package service

import (
	"strings"

	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
)

// ResolveField looks up a logical field id in a payload that may carry the
// same field under several external naming conventions. Candidates are tried
// in order: the id itself, the id behind each known prefix, and the id with
// dots replaced by underscores. The first candidate whose value is present
// and non-empty after trimming wins. A miss returns (nil, false); it is a
// normal outcome, not an error.
func ResolveField(payload model.Payload, fieldId string) (interface{}, bool) {

	candidates := make([]string, 0, len(constants.FieldIdPrefixes)+2)
	candidates = append(candidates, fieldId)
	for _, prefix := range constants.FieldIdPrefixes {
		candidates = append(candidates, prefix+fieldId)
	}
	if strings.Contains(fieldId, ".") {
		candidates = append(candidates, strings.ReplaceAll(fieldId, ".", "_"))
	}

	for _, key := range candidates {
		value, exists := payload[key]
		if !exists || value == nil {
			continue
		}
		if str, ok := value.(string); ok {
			trimmed := strings.TrimSpace(str)
			if trimmed == "" {
				continue
			}
			return trimmed, true
		}
		// Structured values pass through untouched.
		return value, true
	}
	return nil, false
}
