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
	"fmt"
	"net/http"

	attachmentprovider "github.com/openadmissions/forms-intake-service/internal/attachments/provider"
	divisionprovider "github.com/openadmissions/forms-intake-service/internal/divisions/provider"
	mappingprovider "github.com/openadmissions/forms-intake-service/internal/mappings/provider"
	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/submissions/store"
	dbprovider "github.com/openadmissions/forms-intake-service/internal/system/database/provider"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

type SubmissionServiceInterface interface {
	ProcessSubmission(payload model.Payload, divisionOverride string) (model.NormalizedRecord, error)
	GetRecords(limit, offset int) ([]model.NormalizedRecord, error)
	GetRecord(recordId string) (model.NormalizedRecord, error)
}

// SubmissionService is the default implementation of the SubmissionServiceInterface.
type SubmissionService struct{}

// GetSubmissionService creates a new instance of SubmissionService.
func GetSubmissionService() SubmissionServiceInterface {

	return &SubmissionService{}
}

// ProcessSubmission runs the full pipeline for one inbound payload:
// classification (unless the caller passed an explicit division), rule
// loading, normalization and persistence. The record and its attachment
// rows are written in a single transaction; attachment fetch failures are
// absorbed inside the extractor and never roll the record back.
func (ss *SubmissionService) ProcessSubmission(payload model.Payload,
	divisionOverride string) (model.NormalizedRecord, error) {

	logger := log.GetLogger()

	divisionId := divisionOverride
	if divisionId == "" {
		divisions, err := divisionprovider.NewDivisionProvider().GetDivisionService().GetDivisions()
		if err != nil {
			return model.NormalizedRecord{}, err
		}
		divisionId, err = ClassifyDivision(payload, divisions)
		if err != nil {
			return model.NormalizedRecord{}, err
		}
	} else {
		division, err := divisionprovider.NewDivisionProvider().GetDivisionService().GetDivision(divisionId)
		if err != nil {
			return model.NormalizedRecord{}, err
		}
		if division.DivisionId == "" || !division.Active {
			return model.NormalizedRecord{}, errors.NewClientError(errors.ErrorMessage{
				Code:        errors.NO_CONFIGURATION_FOUND.Code,
				Message:     errors.NO_CONFIGURATION_FOUND.Message,
				Description: fmt.Sprintf("No active division exists for the given id: %s.", divisionId),
			}, http.StatusUnprocessableEntity)
		}
	}

	rules, customFields, err := mappingprovider.NewMappingRuleProvider().GetMappingRuleService().LoadRules(divisionId)
	if err != nil {
		return model.NormalizedRecord{}, err
	}

	record, err := Normalize(payload, divisionId, rules, customFields)
	if err != nil {
		return model.NormalizedRecord{}, err
	}

	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for persisting record: %s", record.RecordId)
		logger.Debug(errorMsg, log.Error(err))
		return model.NormalizedRecord{}, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ADD_RECORD.Code,
			Message:     errors.ADD_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for record: %s", record.RecordId)
		logger.Debug(errorMsg, log.Error(err))
		return model.NormalizedRecord{}, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ADD_RECORD.Code,
			Message:     errors.ADD_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	if err := store.AddRecord(tx, record); err != nil {
		_ = tx.Rollback()
		return model.NormalizedRecord{}, err
	}

	attachments := attachmentprovider.NewAttachmentProvider().GetAttachmentService().
		ExtractAttachments(tx, record.RecordId, payload)

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to commit transaction for record: %s", record.RecordId)
		logger.Debug(errorMsg, log.Error(err))
		return model.NormalizedRecord{}, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ADD_RECORD.Code,
			Message:     errors.ADD_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Submission processed into record: %s for division: %s with %d attachment(s).",
		record.RecordId, divisionId, len(attachments)))
	return record, nil
}

func (ss *SubmissionService) GetRecords(limit, offset int) ([]model.NormalizedRecord, error) {

	return store.GetRecords(limit, offset)
}

func (ss *SubmissionService) GetRecord(recordId string) (model.NormalizedRecord, error) {

	return store.GetRecord(recordId)
}
