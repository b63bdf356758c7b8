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

	"github.com/openadmissions/forms-intake-service/internal/mappings/model"
	"github.com/openadmissions/forms-intake-service/internal/system/database/provider"
	errors2 "github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

// AddMappingRule inserts a rule, assigning the next position within its
// division so rule application order follows insertion order.
func AddMappingRule(rule model.MappingRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding mapping rule for source field: %s",
			rule.SourceFieldId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_MAPPING_RULE.Code,
			Message:     errors2.ADD_MAPPING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `INSERT INTO mapping_rules
		(rule_id, division_id, source_field_id, target_table, target_field, value_type, label, active, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM mapping_rules WHERE division_id = $2),
			$9, $10)`

	_, err = dbClient.ExecuteQuery(query,
		rule.RuleId, rule.DivisionId, rule.SourceFieldId, rule.TargetTable, rule.TargetField,
		rule.ValueType, rule.Label, rule.Active, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on inserting mapping rule for source field: %s", rule.SourceFieldId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_MAPPING_RULE.Code,
			Message:     errors2.ADD_MAPPING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Mapping rule: %s for source field: %s added successfully.",
		rule.RuleId, rule.SourceFieldId))
	return nil
}

// GetMappingRules returns all rules of a division in application order
// (persisted insertion order, then rule id).
func GetMappingRules(divisionId string) ([]model.MappingRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching mapping rules for division: %s",
			divisionId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MAPPING_RULES.Code,
			Message:     errors2.FETCH_MAPPING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT rule_id, division_id, source_field_id, target_table, target_field, value_type, label, active, position, created_at, updated_at
		FROM mapping_rules WHERE division_id = $1 ORDER BY position ASC, rule_id ASC`

	rows, err := dbClient.ExecuteQuery(query, divisionId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on fetching mapping rules for division: %s", divisionId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MAPPING_RULES.Code,
			Message:     errors2.FETCH_MAPPING_RULES.Message,
			Description: errorMsg,
		}, err)
	}

	rules := make([]model.MappingRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, scanMappingRule(row))
	}
	return rules, nil
}

// GetMappingRule returns one rule by id; the zero value when absent.
func GetMappingRule(ruleId string) (model.MappingRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching mapping rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return model.MappingRule{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MAPPING_RULES.Code,
			Message:     errors2.FETCH_MAPPING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT rule_id, division_id, source_field_id, target_table, target_field, value_type, label, active, position, created_at, updated_at
		FROM mapping_rules WHERE rule_id = $1`

	rows, err := dbClient.ExecuteQuery(query, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on fetching mapping rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return model.MappingRule{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_MAPPING_RULES.Code,
			Message:     errors2.FETCH_MAPPING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	if len(rows) == 0 {
		return model.MappingRule{}, nil
	}
	return scanMappingRule(rows[0]), nil
}

// UpdateMappingRule updates an existing rule. Position is preserved so the
// application order stays stable across edits.
func UpdateMappingRule(rule model.MappingRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating mapping rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_MAPPING_RULE.Code,
			Message:     errors2.UPDATE_MAPPING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `UPDATE mapping_rules SET source_field_id = $2, target_table = $3, target_field = $4,
		value_type = $5, label = $6, active = $7, updated_at = $8 WHERE rule_id = $1`

	_, err = dbClient.ExecuteQuery(query, rule.RuleId, rule.SourceFieldId, rule.TargetTable,
		rule.TargetField, rule.ValueType, rule.Label, rule.Active, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on updating mapping rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_MAPPING_RULE.Code,
			Message:     errors2.UPDATE_MAPPING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Mapping rule: %s updated successfully.", rule.RuleId))
	return nil
}

// DeleteMappingRule removes a rule.
func DeleteMappingRule(ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting mapping rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_MAPPING_RULE.Code,
			Message:     errors2.DELETE_MAPPING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery(`DELETE FROM mapping_rules WHERE rule_id = $1`, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on deleting mapping rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_MAPPING_RULE.Code,
			Message:     errors2.DELETE_MAPPING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Mapping rule: %s deleted successfully.", ruleId))
	return nil
}

// AddCustomField inserts a custom field declaration.
func AddCustomField(field model.CustomFieldDeclaration) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding custom field: %s", field.FieldName)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CUSTOM_FIELD.Code,
			Message:     errors2.ADD_CUSTOM_FIELD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	divisionsJson, err := json.Marshal(field.DivisionIds)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal division ids for custom field: %s", field.FieldName)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO custom_fields (field_id, field_name, division_ids, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = dbClient.ExecuteQuery(query, field.FieldId, field.FieldName, string(divisionsJson),
		field.Active, field.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on inserting custom field: %s", field.FieldName)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CUSTOM_FIELD.Code,
			Message:     errors2.ADD_CUSTOM_FIELD.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Custom field: %s added successfully.", field.FieldName))
	return nil
}

// GetCustomFields returns every custom field declaration. Division scoping
// happens in the service layer since declarations may span divisions.
func GetCustomFields() ([]model.CustomFieldDeclaration, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching custom fields."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CUSTOM_FIELDS.Code,
			Message:     errors2.FETCH_CUSTOM_FIELDS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT field_id, field_name, division_ids, active, created_at FROM custom_fields
		ORDER BY created_at ASC, field_id ASC`

	rows, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed on fetching custom fields."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CUSTOM_FIELDS.Code,
			Message:     errors2.FETCH_CUSTOM_FIELDS.Message,
			Description: errorMsg,
		}, err)
	}

	fields := make([]model.CustomFieldDeclaration, 0, len(rows))
	for _, row := range rows {
		field := model.CustomFieldDeclaration{
			FieldId:   asString(row["field_id"]),
			FieldName: asString(row["field_name"]),
			Active:    asBool(row["active"]),
			CreatedAt: asInt64(row["created_at"]),
		}
		if raw := asString(row["division_ids"]); raw != "" {
			_ = json.Unmarshal([]byte(raw), &field.DivisionIds)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// DeleteCustomField removes a custom field declaration.
func DeleteCustomField(fieldId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting custom field: %s", fieldId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_CUSTOM_FIELD.Code,
			Message:     errors2.DELETE_CUSTOM_FIELD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery(`DELETE FROM custom_fields WHERE field_id = $1`, fieldId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on deleting custom field: %s", fieldId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_CUSTOM_FIELD.Code,
			Message:     errors2.DELETE_CUSTOM_FIELD.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Custom field: %s deleted successfully.", fieldId))
	return nil
}

func scanMappingRule(row map[string]interface{}) model.MappingRule {

	return model.MappingRule{
		RuleId:        asString(row["rule_id"]),
		DivisionId:    asString(row["division_id"]),
		SourceFieldId: asString(row["source_field_id"]),
		TargetTable:   asString(row["target_table"]),
		TargetField:   asString(row["target_field"]),
		ValueType:     asString(row["value_type"]),
		Label:         asString(row["label"]),
		Active:        asBool(row["active"]),
		Position:      int(asInt64(row["position"])),
		CreatedAt:     asInt64(row["created_at"]),
		UpdatedAt:     asInt64(row["updated_at"]),
	}
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
