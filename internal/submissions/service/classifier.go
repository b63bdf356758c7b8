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
	"net/http"
	"strings"

	divisionmodel "github.com/openadmissions/forms-intake-service/internal/divisions/model"
	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

// ClassifyDivision scores an untagged payload against every active division
// and returns the division id with the highest score. Each present and
// non-empty strong-signal field counts one point; an exact form identifier
// match adds a bonus large enough to dominate any signal count. Ties keep
// the earlier division, so the first-registered division acts as the
// default. Classification with no active division at all is a reportable
// failure, never a silent default.
func ClassifyDivision(payload model.Payload, divisions []divisionmodel.DivisionConfig) (string, error) {

	// Form systems send the identifier as a string or a bare JSON number.
	formId := ""
	if raw, found := ResolveField(payload, constants.FormIdentifierField); found {
		formId = strings.TrimSpace(stringify(raw))
	}

	bestId := ""
	bestScore := -1
	for _, division := range divisions {
		if !division.Active {
			continue
		}
		score := 0
		for _, signal := range division.SignalFields {
			if _, found := ResolveField(payload, signal); found {
				score++
			}
		}
		if formId != "" && division.FormId != "" && division.FormId == formId {
			score += constants.FormIdentifierBonus
		}
		if score > bestScore {
			bestScore = score
			bestId = division.DivisionId
		}
	}

	if bestId == "" {
		return "", errors.NewClientError(errors.ErrorMessage{
			Code:        errors.NO_CONFIGURATION_FOUND.Code,
			Message:     errors.NO_CONFIGURATION_FOUND.Message,
			Description: errors.NO_CONFIGURATION_FOUND.Description,
		}, http.StatusUnprocessableEntity)
	}
	return bestId, nil
}
