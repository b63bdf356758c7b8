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

	"github.com/openadmissions/forms-intake-service/internal/submissions/handler"
)

type SubmissionService struct {
	submissionHandler *handler.SubmissionHandler
}

func NewSubmissionService() *SubmissionService {
	return &SubmissionService{
		submissionHandler: handler.NewSubmissionHandler(),
	}
}

// Route dispatches webhook intake and record endpoints.
func (s *SubmissionService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/intake/submissions":
		s.submissionHandler.HandleSubmission(w, r)

	case method == http.MethodGet && path == "/intake/records":
		s.submissionHandler.GetRecords(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/intake/records/"):
		s.submissionHandler.GetRecord(w, r)

	case method == http.MethodGet && path == "/debug/submissions":
		s.submissionHandler.GetRecentSubmissions(w, r)

	default:
		http.NotFound(w, r)
	}
}
