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

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/database/provider"
	errors2 "github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

// AddRecord persists a normalized record inside the given transaction so
// that the record and its attachment rows commit or roll back together.
func AddRecord(tx *sql.Tx, record model.NormalizedRecord) error {

	logger := log.GetLogger()

	fieldsJson, err := json.Marshal(record.Fields)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal fields for record: %s", record.RecordId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	var residual interface{}
	if record.ResidualData != "" {
		residual = record.ResidualData
	}

	query := `INSERT INTO application_records
		(record_id, division_id, submitted_at, status, fields, residual_data)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.Exec(query, record.RecordId, record.DivisionId, record.SubmittedAt,
		record.Status, string(fieldsJson), residual)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on inserting application record: %s", record.RecordId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RECORD.Code,
			Message:     errors2.ADD_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Application record: %s persisted successfully.", record.RecordId))
	return nil
}

// GetRecords returns a page of application records, newest first.
func GetRecords(limit, offset int) ([]model.NormalizedRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching records."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RECORDS.Code,
			Message:     errors2.FETCH_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT record_id, division_id, submitted_at, status, fields, residual_data
		FROM application_records ORDER BY submitted_at DESC, record_id ASC LIMIT $1 OFFSET $2`

	rows, err := dbClient.ExecuteQuery(query, limit, offset)
	if err != nil {
		errorMsg := "Failed on fetching application records."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RECORDS.Code,
			Message:     errors2.FETCH_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}

	records := make([]model.NormalizedRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, scanRecord(row))
	}
	return records, nil
}

// GetRecord returns one application record by id; the zero value when absent.
func GetRecord(recordId string) (model.NormalizedRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching record: %s", recordId)
		logger.Debug(errorMsg, log.Error(err))
		return model.NormalizedRecord{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RECORDS.Code,
			Message:     errors2.FETCH_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT record_id, division_id, submitted_at, status, fields, residual_data
		FROM application_records WHERE record_id = $1`

	rows, err := dbClient.ExecuteQuery(query, recordId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on fetching application record: %s", recordId)
		logger.Debug(errorMsg, log.Error(err))
		return model.NormalizedRecord{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RECORDS.Code,
			Message:     errors2.FETCH_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(rows) == 0 {
		return model.NormalizedRecord{}, nil
	}
	return scanRecord(rows[0]), nil
}

func scanRecord(row map[string]interface{}) model.NormalizedRecord {

	record := model.NormalizedRecord{
		RecordId:     asString(row["record_id"]),
		DivisionId:   asString(row["division_id"]),
		SubmittedAt:  asInt64(row["submitted_at"]),
		Status:       asString(row["status"]),
		ResidualData: asString(row["residual_data"]),
	}
	if raw := asString(row["fields"]); raw != "" {
		_ = json.Unmarshal([]byte(raw), &record.Fields)
	}
	return record
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
