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
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	mappingmodel "github.com/openadmissions/forms-intake-service/internal/mappings/model"
	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

var residualKeyCleaner = regexp.MustCompile(`[^a-z0-9\s_]+`)
var whitespaceRuns = regexp.MustCompile(`\s+`)

// Normalize applies the division's mapping rules and custom field
// declarations to a payload and produces the canonical record. Rules are
// applied in persisted position order; when two rules write the same flat
// target the later rule wins. Custom fields land in residual data under
// their own name and overwrite any synthesized key of the same name. Any
// panic while applying rules aborts the whole normalization: no partial
// record is ever returned.
func Normalize(payload model.Payload, divisionId string, rules []mappingmodel.MappingRule,
	customFields []mappingmodel.CustomFieldDeclaration) (record model.NormalizedRecord, err error) {

	defer func() {
		if r := recover(); r != nil {
			record = model.NormalizedRecord{}
			err = errors.NewServerError(errors.ErrorMessage{
				Code:        errors.NORMALIZATION_FAILED.Code,
				Message:     errors.NORMALIZATION_FAILED.Message,
				Description: errors.NORMALIZATION_FAILED.Description,
			}, fmt.Errorf("panic during normalization: %v", r))
		}
	}()

	fields := make(map[string]interface{})
	residual := make(map[string]interface{})

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		raw, found := ResolveField(payload, rule.SourceFieldId)
		if !found {
			continue
		}
		value := CoerceValue(raw, rule.ValueType)
		if value == nil {
			continue
		}
		if rule.TargetField == constants.ResidualTargetField {
			residual[residualKey(rule)] = value
		} else {
			fields[rule.TargetField] = value
		}
	}

	for _, field := range customFields {
		if raw, found := ResolveField(payload, field.FieldName); found {
			residual[field.FieldName] = raw
		}
	}

	synthesizeStudentName(fields)

	record = model.NormalizedRecord{
		RecordId:    uuid.New().String(),
		DivisionId:  divisionId,
		SubmittedAt: time.Now().UTC().Unix(),
		Status:      constants.RecordStatusReceived,
		Fields:      fields,
	}

	if len(residual) > 0 {
		serialized, marshalErr := json.Marshal(residual)
		if marshalErr != nil {
			return model.NormalizedRecord{}, errors.NewServerError(errors.ErrorMessage{
				Code:    errors.MARSHAL_JSON.Code,
				Message: errors.MARSHAL_JSON.Message,
			}, marshalErr)
		}
		record.ResidualData = string(serialized)
	}
	return record, nil
}

// residualKey picks a stable residual key for a rule: the well-known key for
// its source field id when one exists, else a slug of the rule's label, else
// a key derived from the field id itself.
func residualKey(rule mappingmodel.MappingRule) string {

	if key, ok := constants.KnownResidualKeys[rule.SourceFieldId]; ok {
		return key
	}
	if rule.Label != "" {
		slug := strings.ToLower(rule.Label)
		slug = residualKeyCleaner.ReplaceAllString(slug, "")
		slug = whitespaceRuns.ReplaceAllString(strings.TrimSpace(slug), "_")
		if slug != "" {
			return slug
		}
	}
	return "field_" + rule.SourceFieldId
}

// synthesizeStudentName joins name components with single spaces, skipping
// empties, unless a rule already populated the display name directly.
func synthesizeStudentName(fields map[string]interface{}) {

	if existing, ok := fields[constants.StudentNameField]; ok && existing != nil {
		return
	}
	parts := make([]string, 0, 3)
	for _, component := range []string{constants.FirstNameField, constants.MiddleNameField, constants.LastNameField} {
		if value, ok := fields[component]; ok {
			if str, ok := value.(string); ok && str != "" {
				parts = append(parts, str)
			}
		}
	}
	if len(parts) > 0 {
		fields[constants.StudentNameField] = strings.Join(parts, " ")
	}
}
