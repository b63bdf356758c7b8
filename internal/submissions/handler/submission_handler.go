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

package handler

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	attachmentprovider "github.com/openadmissions/forms-intake-service/internal/attachments/provider"
	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/submissions/provider"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/pagination"
	"github.com/openadmissions/forms-intake-service/internal/system/security"
	"github.com/openadmissions/forms-intake-service/internal/system/trace"
	"github.com/openadmissions/forms-intake-service/internal/system/utils"
)

// traceRecorder keeps the most recent submissions for the debug view.
var traceRecorder = trace.NewRecorder(constants.SubmissionTraceCapacity)

type SubmissionHandler struct{}

func NewSubmissionHandler() *SubmissionHandler {

	return &SubmissionHandler{}
}

// HandleSubmission ingests one webhook payload. The body may be a JSON
// object or URL-encoded form data carrying the JSON under the embedded
// payload key. An optional division query parameter skips classification.
func (sh *SubmissionHandler) HandleSubmission(w http.ResponseWriter, r *http.Request) {

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxWebhookBodyBytes)
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			http.Error(w, "Request body exceeds the allowed size", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Unable to read request body", http.StatusBadRequest)
		return
	}

	if err := security.VerifyWebhookSignature(r, rawBody); err != nil {
		utils.HandleError(w, err)
		return
	}

	payload, err := parsePayload(r.Header.Get("Content-Type"), rawBody)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	submissionTrace := trace.SubmissionTrace{
		TraceID:    uuid.New().String(),
		ReceivedAt: time.Now().UTC(),
		Payload:    payload,
	}

	divisionOverride := r.URL.Query().Get("division")
	submissionService := provider.NewSubmissionProvider().GetSubmissionService()
	record, err := submissionService.ProcessSubmission(payload, divisionOverride)
	if err != nil {
		submissionTrace.Outcome = "failed"
		submissionTrace.Error = err.Error()
		traceRecorder.Record(submissionTrace)
		utils.HandleError(w, err)
		return
	}

	submissionTrace.Outcome = "accepted"
	submissionTrace.DivisionId = record.DivisionId
	submissionTrace.RecordId = record.RecordId
	traceRecorder.Record(submissionTrace)

	utils.WriteJSONResponse(w, http.StatusAccepted, map[string]string{
		"record_id":   record.RecordId,
		"division_id": record.DivisionId,
		"status":      record.Status,
	})
}

// GetRecords returns a page of normalized records, newest first.
func (sh *SubmissionHandler) GetRecords(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	limit, err := pagination.ParseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	offset, err := pagination.ParseOffset(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	submissionService := provider.NewSubmissionProvider().GetSubmissionService()
	records, err := submissionService.GetRecords(limit, offset)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, records)
}

// GetRecord returns one normalized record together with its attachments.
func (sh *SubmissionHandler) GetRecord(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	recordId := parts[len(parts)-1]

	submissionService := provider.NewSubmissionProvider().GetSubmissionService()
	record, err := submissionService.GetRecord(recordId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if record.RecordId == "" {
		http.NotFound(w, r)
		return
	}

	attachments, err := attachmentprovider.NewAttachmentProvider().GetAttachmentService().GetAttachments(recordId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"record":      record,
		"attachments": attachments,
	})
}

// GetRecentSubmissions exposes the in-process trace ring buffer.
func (sh *SubmissionHandler) GetRecentSubmissions(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, traceRecorder.Recent())
}

// parsePayload decodes the webhook body. URL-encoded bodies must carry the
// JSON payload under the embedded payload key; everything else is decoded
// as a JSON object directly.
func parsePayload(contentType string, rawBody []byte) (model.Payload, error) {

	invalidFormat := func(description string) error {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.INVALID_REQUEST_FORMAT.Code,
			Message:     errors.INVALID_REQUEST_FORMAT.Message,
			Description: description,
		}, http.StatusBadRequest)
	}

	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(rawBody))
		if err != nil {
			return nil, invalidFormat("Request body is not valid URL-encoded form data.")
		}
		embedded := values.Get(constants.EmbeddedPayloadKey)
		if embedded == "" {
			return nil, invalidFormat("Form data is missing the embedded JSON payload.")
		}
		var payload model.Payload
		if err := json.Unmarshal([]byte(embedded), &payload); err != nil {
			return nil, invalidFormat("Embedded payload is not a valid JSON object.")
		}
		return payload, nil
	}

	var payload model.Payload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, invalidFormat("Request body is not a valid JSON object.")
	}
	return payload, nil
}
