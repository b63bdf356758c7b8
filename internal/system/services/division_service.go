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

	"github.com/openadmissions/forms-intake-service/internal/divisions/handler"
)

type DivisionService struct {
	divisionHandler *handler.DivisionHandler
}

func NewDivisionService() *DivisionService {
	return &DivisionService{
		divisionHandler: handler.NewDivisionHandler(),
	}
}

// Route dispatches division configuration endpoints.
func (s *DivisionService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/divisions":
		s.divisionHandler.AddDivision(w, r)

	case method == http.MethodGet && path == "/divisions":
		s.divisionHandler.GetDivisions(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/divisions/"):
		s.divisionHandler.GetDivision(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/divisions/"):
		s.divisionHandler.PutDivision(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/divisions/"):
		s.divisionHandler.DeleteDivision(w, r)

	default:
		http.NotFound(w, r)
	}
}
