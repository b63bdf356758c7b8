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
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/openadmissions/forms-intake-service/internal/divisions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/database/provider"
	errors2 "github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

// AddDivision inserts a new division configuration.
func AddDivision(division model.DivisionConfig) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding division: %s", division.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_DIVISION.Code,
			Message:     errors2.ADD_DIVISION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	signalsJson, err := json.Marshal(division.SignalFields)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal signal fields for division: %s", division.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO divisions
		(division_id, name, form_id, signal_fields, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = dbClient.ExecuteQuery(query,
		division.DivisionId, division.Name, division.FormId, string(signalsJson),
		division.Active, division.CreatedAt, division.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on inserting division: %s", division.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_DIVISION.Code,
			Message:     errors2.ADD_DIVISION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Division: %s (%s) added successfully.", division.Name, division.DivisionId))
	return nil
}

// GetDivisions returns all divisions ordered by registration time. The
// first row is the designated classification default.
func GetDivisions() ([]model.DivisionConfig, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching divisions."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_DIVISIONS.Code,
			Message:     errors2.FETCH_DIVISIONS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT division_id, name, form_id, signal_fields, active, created_at, updated_at
		FROM divisions ORDER BY created_at ASC, division_id ASC`

	rows, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed on fetching divisions."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_DIVISIONS.Code,
			Message:     errors2.FETCH_DIVISIONS.Message,
			Description: errorMsg,
		}, err)
	}

	divisions := make([]model.DivisionConfig, 0, len(rows))
	for _, row := range rows {
		divisions = append(divisions, scanDivision(row))
	}
	return divisions, nil
}

// GetDivision returns one division by id; the zero value when absent.
func GetDivision(divisionId string) (model.DivisionConfig, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching division: %s", divisionId)
		logger.Debug(errorMsg, log.Error(err))
		return model.DivisionConfig{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_DIVISIONS.Code,
			Message:     errors2.FETCH_DIVISIONS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT division_id, name, form_id, signal_fields, active, created_at, updated_at
		FROM divisions WHERE division_id = $1`

	rows, err := dbClient.ExecuteQuery(query, divisionId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on fetching division: %s", divisionId)
		logger.Debug(errorMsg, log.Error(err))
		return model.DivisionConfig{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_DIVISIONS.Code,
			Message:     errors2.FETCH_DIVISIONS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(rows) == 0 {
		return model.DivisionConfig{}, nil
	}
	return scanDivision(rows[0]), nil
}

// UpdateDivision updates an existing division configuration.
func UpdateDivision(division model.DivisionConfig) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating division: %s", division.DivisionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DIVISION.Code,
			Message:     errors2.UPDATE_DIVISION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	signalsJson, err := json.Marshal(division.SignalFields)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal signal fields for division: %s", division.DivisionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	query := `UPDATE divisions SET name = $2, form_id = $3, signal_fields = $4, active = $5, updated_at = $6
		WHERE division_id = $1`

	_, err = dbClient.ExecuteQuery(query, division.DivisionId, division.Name, division.FormId,
		string(signalsJson), division.Active, division.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on updating division: %s", division.DivisionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DIVISION.Code,
			Message:     errors2.UPDATE_DIVISION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Division: %s updated successfully.", division.DivisionId))
	return nil
}

// DeleteDivision removes a division configuration.
func DeleteDivision(divisionId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting division: %s", divisionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_DIVISION.Code,
			Message:     errors2.DELETE_DIVISION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery(`DELETE FROM divisions WHERE division_id = $1`, divisionId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on deleting division: %s", divisionId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_DIVISION.Code,
			Message:     errors2.DELETE_DIVISION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Division: %s deleted successfully.", divisionId))
	return nil
}

func scanDivision(row map[string]interface{}) model.DivisionConfig {

	division := model.DivisionConfig{
		DivisionId: asString(row["division_id"]),
		Name:       asString(row["name"]),
		FormId:     asString(row["form_id"]),
		Active:     asBool(row["active"]),
		CreatedAt:  asInt64(row["created_at"]),
		UpdatedAt:  asInt64(row["updated_at"]),
	}
	if raw := asString(row["signal_fields"]); raw != "" {
		_ = json.Unmarshal([]byte(raw), &division.SignalFields)
	}
	return division
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

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
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
