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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	divisionmodel "github.com/openadmissions/forms-intake-service/internal/divisions/model"
	divisionservice "github.com/openadmissions/forms-intake-service/internal/divisions/service"
	mappingmodel "github.com/openadmissions/forms-intake-service/internal/mappings/model"
	mappingservice "github.com/openadmissions/forms-intake-service/internal/mappings/service"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

func Test_MappingRuleLifecycle(t *testing.T) {

	divisionSvc := divisionservice.GetDivisionService()
	mappingSvc := mappingservice.GetMappingRuleService()

	division, err := divisionSvc.AddDivision(divisionmodel.DivisionConfig{
		Name:         "Beis Medrash",
		FormId:       "7",
		SignalFields: []string{"father_birth_date"},
		Active:       true,
	})
	require.NoError(t, err)

	var ruleId string

	t.Run("Add_rule_assigns_id_and_position", func(t *testing.T) {
		created, err := mappingSvc.AddMappingRule(mappingmodel.MappingRule{
			DivisionId:    division.DivisionId,
			SourceFieldId: "father_birth_date",
			TargetTable:   constants.RecordsTable,
			TargetField:   constants.ResidualTargetField,
			ValueType:     "date",
			Label:         "Father Birth Date",
			Active:        true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.RuleId)
		ruleId = created.RuleId
	})

	t.Run("Rules_keep_insertion_order", func(t *testing.T) {
		second, err := mappingSvc.AddMappingRule(mappingmodel.MappingRule{
			DivisionId:    division.DivisionId,
			SourceFieldId: "29",
			TargetTable:   constants.RecordsTable,
			TargetField:   constants.ResidualTargetField,
			ValueType:     "text",
			Label:         "Rabbinic Reference",
			Active:        true,
		})
		require.NoError(t, err)

		rules, err := mappingSvc.GetMappingRules(division.DivisionId)
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, ruleId, rules[0].RuleId)
		assert.Equal(t, second.RuleId, rules[1].RuleId)
		assert.Less(t, rules[0].Position, rules[1].Position)
	})

	t.Run("Update_rule_preserves_position", func(t *testing.T) {
		fetched, err := mappingSvc.GetMappingRule(ruleId)
		require.NoError(t, err)

		fetched.Label = "Father DOB"
		require.NoError(t, mappingSvc.PutMappingRule(fetched))

		updated, err := mappingSvc.GetMappingRule(ruleId)
		require.NoError(t, err)
		assert.Equal(t, "Father DOB", updated.Label)
		assert.Equal(t, fetched.Position, updated.Position)
	})

	t.Run("Invalid_value_type_rejected", func(t *testing.T) {
		_, err := mappingSvc.AddMappingRule(mappingmodel.MappingRule{
			DivisionId:    division.DivisionId,
			SourceFieldId: "5",
			TargetTable:   constants.RecordsTable,
			TargetField:   "anything",
			ValueType:     "boolean",
			Active:        true,
		})
		require.Error(t, err)

		var clientError *errors.ClientError
		require.ErrorAs(t, err, &clientError)
		assert.Equal(t, errors.ErrValueTypeValidation.Code, clientError.Code)
	})

	t.Run("Custom_field_lifecycle", func(t *testing.T) {
		field, err := mappingSvc.AddCustomField(mappingmodel.CustomFieldDeclaration{
			FieldName:   "student_goals",
			DivisionIds: []string{division.DivisionId},
			Active:      true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, field.FieldId)

		_, customFields, err := mappingSvc.LoadRules(division.DivisionId)
		require.NoError(t, err)
		require.Len(t, customFields, 1)
		assert.Equal(t, "student_goals", customFields[0].FieldName)

		require.NoError(t, mappingSvc.DeleteCustomField(field.FieldId))

		fields, err := mappingSvc.GetCustomFields()
		require.NoError(t, err)
		for _, f := range fields {
			assert.NotEqual(t, field.FieldId, f.FieldId)
		}
	})

	t.Run("Delete_rule", func(t *testing.T) {
		require.NoError(t, mappingSvc.DeleteMappingRule(ruleId))

		fetched, err := mappingSvc.GetMappingRule(ruleId)
		require.NoError(t, err)
		assert.Empty(t, fetched.RuleId)
	})

	t.Run("Division_update_and_delete", func(t *testing.T) {
		division.Name = "Beis Medrash Gevoha"
		require.NoError(t, divisionSvc.PutDivision(division))

		updated, err := divisionSvc.GetDivision(division.DivisionId)
		require.NoError(t, err)
		assert.Equal(t, "Beis Medrash Gevoha", updated.Name)

		require.NoError(t, divisionSvc.DeleteDivision(division.DivisionId))

		gone, err := divisionSvc.GetDivision(division.DivisionId)
		require.NoError(t, err)
		assert.Empty(t, gone.DivisionId)
	})
}
