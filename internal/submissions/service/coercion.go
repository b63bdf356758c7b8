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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openadmissions/forms-intake-service/internal/system/constants"
)

// CoerceValue converts a raw payload value into a typed value according to
// the declared value type. Coercion never fails: malformed input degrades to
// nil (text, date, number) or to the raw string (json).
func CoerceValue(raw interface{}, valueType string) interface{} {

	switch valueType {
	case constants.TextValueType:
		return coerceText(raw)
	case constants.DateValueType:
		return coerceDate(raw)
	case constants.NumberValueType:
		return coerceNumber(raw)
	case constants.JsonValueType:
		return coerceJson(raw)
	default:
		return coerceText(raw)
	}
}

func coerceText(raw interface{}) interface{} {

	if raw == nil {
		return nil
	}
	str := strings.TrimSpace(stringify(raw))
	if str == "" {
		return nil
	}
	return str
}

// coerceDate tries the supported patterns in order. Ambiguous strings such
// as "03/04/2024" resolve by pattern order: MM/DD/YYYY before DD/MM/YYYY.
func coerceDate(raw interface{}) interface{} {

	if raw == nil {
		return nil
	}
	str := strings.TrimSpace(stringify(raw))
	if str == "" {
		return nil
	}
	for _, pattern := range constants.DatePatterns {
		if parsed, err := time.Parse(pattern, str); err == nil {
			return parsed
		}
	}
	return nil
}

func coerceNumber(raw interface{}) interface{} {

	if raw == nil {
		return nil
	}
	if num, ok := raw.(float64); ok {
		return num
	}
	str := strings.TrimSpace(stringify(raw))
	if str == "" {
		return nil
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil
	}
	return num
}

// coerceJson passes structured values through, parses strings that hold
// JSON, and keeps the raw string when parsing fails.
func coerceJson(raw interface{}) interface{} {

	if raw == nil {
		return nil
	}
	str, ok := raw.(string)
	if !ok {
		return raw
	}
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return str
	}
	return parsed
}

func stringify(raw interface{}) string {

	if str, ok := raw.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", raw)
}
