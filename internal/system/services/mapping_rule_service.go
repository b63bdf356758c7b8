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

package services

import (
	"net/http"
	"strings"

	"github.com/openadmissions/forms-intake-service/internal/mappings/handler"
)

type MappingRuleService struct {
	mappingRuleHandler *handler.MappingRuleHandler
}

func NewMappingRuleService() *MappingRuleService {
	return &MappingRuleService{
		mappingRuleHandler: handler.NewMappingRuleHandler(),
	}
}

// Route dispatches mapping rule and custom field endpoints.
func (s *MappingRuleService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/mapping-rules":
		s.mappingRuleHandler.AddMappingRule(w, r)

	case method == http.MethodGet && path == "/mapping-rules":
		s.mappingRuleHandler.GetMappingRules(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/mapping-rules/"):
		s.mappingRuleHandler.GetMappingRule(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/mapping-rules/"):
		s.mappingRuleHandler.PutMappingRule(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/mapping-rules/"):
		s.mappingRuleHandler.DeleteMappingRule(w, r)

	case method == http.MethodPost && path == "/custom-fields":
		s.mappingRuleHandler.AddCustomField(w, r)

	case method == http.MethodGet && path == "/custom-fields":
		s.mappingRuleHandler.GetCustomFields(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/custom-fields/"):
		s.mappingRuleHandler.DeleteCustomField(w, r)

	default:
		http.NotFound(w, r)
	}
}
