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

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attachmentservice "github.com/openadmissions/forms-intake-service/internal/attachments/service"
	divisionmodel "github.com/openadmissions/forms-intake-service/internal/divisions/model"
	divisionservice "github.com/openadmissions/forms-intake-service/internal/divisions/service"
	mappingmodel "github.com/openadmissions/forms-intake-service/internal/mappings/model"
	mappingservice "github.com/openadmissions/forms-intake-service/internal/mappings/service"
	submissionmodel "github.com/openadmissions/forms-intake-service/internal/submissions/model"
	submissionservice "github.com/openadmissions/forms-intake-service/internal/submissions/service"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

func Test_IntakePipeline(t *testing.T) {

	divisionSvc := divisionservice.GetDivisionService()
	mappingSvc := mappingservice.GetMappingRuleService()
	submissionSvc := submissionservice.GetSubmissionService()

	division, err := divisionSvc.AddDivision(divisionmodel.DivisionConfig{
		Name:         "High School",
		FormId:       "4",
		SignalFields: []string{"1.3", "1.6"},
		Active:       true,
	})
	require.NoError(t, err, "Failed to add division")

	addRule := func(source, target, valueType, label string) mappingmodel.MappingRule {
		created, err := mappingSvc.AddMappingRule(mappingmodel.MappingRule{
			DivisionId:    division.DivisionId,
			SourceFieldId: source,
			TargetTable:   constants.RecordsTable,
			TargetField:   target,
			ValueType:     valueType,
			Label:         label,
			Active:        true,
		})
		require.NoError(t, err, "Failed to add mapping rule for %s", source)
		return created
	}

	addRule("1.3", constants.FirstNameField, "text", "First Name")
	addRule("1.6", constants.LastNameField, "text", "Last Name")
	addRule("27", constants.ResidualTargetField, "text", "Student Goals")
	addRule("birth_date", "birth_date", "date", "Birth Date")

	t.Run("Classified_submission_produces_canonical_record", func(t *testing.T) {
		payload := submissionmodel.Payload{
			"form_id":    "4",
			"1.3":        "Yaakov",
			"1.6":        "Goldstein",
			"27":         "x",
			"birth_date": "2008-09-14",
		}

		record, err := submissionSvc.ProcessSubmission(payload, "")
		require.NoError(t, err, "Failed to process submission")

		assert.Equal(t, division.DivisionId, record.DivisionId)
		assert.Equal(t, constants.RecordStatusReceived, record.Status)
		assert.Equal(t, "Yaakov Goldstein", record.Fields[constants.StudentNameField])

		var residual map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(record.ResidualData), &residual))
		assert.Equal(t, "x", residual["student_goals"])

		stored, err := submissionSvc.GetRecord(record.RecordId)
		require.NoError(t, err)
		assert.Equal(t, record.RecordId, stored.RecordId)
		assert.Equal(t, "Yaakov Goldstein", stored.Fields[constants.StudentNameField])
	})

	t.Run("Division_override_skips_classification", func(t *testing.T) {
		payload := submissionmodel.Payload{"1.3": "Rivka"}

		record, err := submissionSvc.ProcessSubmission(payload, division.DivisionId)
		require.NoError(t, err)
		assert.Equal(t, division.DivisionId, record.DivisionId)
	})

	t.Run("Unknown_division_override_rejected", func(t *testing.T) {
		_, err := submissionSvc.ProcessSubmission(submissionmodel.Payload{"1.3": "x"}, "no-such-division")
		require.Error(t, err)

		var clientError *errors.ClientError
		require.ErrorAs(t, err, &clientError)
		assert.Equal(t, errors.NO_CONFIGURATION_FOUND.Code, clientError.Code)
	})

	t.Run("Attachments_fetched_and_recorded_with_record", func(t *testing.T) {
		fileServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 transcript"))
		}))
		defer fileServer.Close()

		payload := submissionmodel.Payload{
			"form_id":     "4",
			"1.3":         "Moshe",
			"attachments": fmt.Sprintf(`{"url": "%s/uploads/transcript.pdf"}`, fileServer.URL),
		}

		record, err := submissionSvc.ProcessSubmission(payload, "")
		require.NoError(t, err)

		attachments, err := attachmentservice.GetAttachmentService().GetAttachments(record.RecordId)
		require.NoError(t, err)
		require.Len(t, attachments, 1)
		assert.Equal(t, "transcript.pdf", attachments[0].FileName)
		assert.Equal(t, "application/pdf", attachments[0].ContentType)
		assert.Equal(t, int64(len("%PDF-1.4 transcript")), attachments[0].SizeBytes)
	})

	t.Run("Failed_attachment_fetch_does_not_abort_record", func(t *testing.T) {
		payload := submissionmodel.Payload{
			"form_id":     "4",
			"1.3":         "Dovid",
			"attachments": `{"url": "http://127.0.0.1:1/unreachable.pdf"}`,
		}

		record, err := submissionSvc.ProcessSubmission(payload, "")
		require.NoError(t, err, "record must survive a dead attachment host")

		attachments, err := attachmentservice.GetAttachmentService().GetAttachments(record.RecordId)
		require.NoError(t, err)
		assert.Empty(t, attachments)
	})

	t.Run("Records_listing_is_paginated_newest_first", func(t *testing.T) {
		records, err := submissionSvc.GetRecords(2, 0)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(records), 2)
		if len(records) == 2 {
			assert.GreaterOrEqual(t, records[0].SubmittedAt, records[1].SubmittedAt)
		}
	})
}
