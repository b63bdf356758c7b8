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

package managers

import (
	"net/http"
	"strings"

	"github.com/openadmissions/forms-intake-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	healthService := services.NewHealthService()
	divisionService := services.NewDivisionService()
	mappingRuleService := services.NewMappingRuleService()
	submissionService := services.NewSubmissionService()

	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)

	// Single dispatcher for all API services under the base path.
	sm.mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, apiBasePath)
		path = strings.TrimSuffix(path, "/")

		// The routing services see the path relative to the base path.
		r.URL.Path = path

		switch {
		case strings.HasPrefix(path, "/intake") || strings.HasPrefix(path, "/debug"):
			submissionService.Route(w, r)
		case strings.HasPrefix(path, "/divisions"):
			divisionService.Route(w, r)
		case strings.HasPrefix(path, "/mapping-rules") || strings.HasPrefix(path, "/custom-fields"):
			mappingRuleService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}
