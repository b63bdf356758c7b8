/*
 * Copyright (c) 2025-2026, OpenAdmissions (https://openadmissions.org).
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

package errors

const errorPrefix = "FIS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	ADD_MAPPING_RULE = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while adding mapping rule.",
	}

	FETCH_MAPPING_RULES = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching mapping rule(s).",
	}

	UPDATE_MAPPING_RULE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while updating mapping rule.",
	}

	DELETE_MAPPING_RULE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while deleting mapping rule.",
	}

	ADD_DIVISION = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while adding division configuration.",
	}

	FETCH_DIVISIONS = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching division configuration(s).",
	}

	UPDATE_DIVISION = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while updating division configuration.",
	}

	DELETE_DIVISION = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while deleting division configuration.",
	}

	ADD_CUSTOM_FIELD = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while adding custom field declaration.",
	}

	FETCH_CUSTOM_FIELDS = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while fetching custom field declaration(s).",
	}

	DELETE_CUSTOM_FIELD = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while deleting custom field declaration.",
	}

	NORMALIZATION_FAILED = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while normalizing the submission payload.",
	}

	ADD_RECORD = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while persisting the application record.",
	}

	FETCH_RECORDS = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while fetching application record(s).",
	}

	ADD_ATTACHMENT = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while persisting attachment metadata.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while serializing data to JSON.",
	}

	// Client error codes

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Unauthorized request.",
	}

	INVALID_REQUEST_FORMAT = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Invalid request payload format.",
	}

	NO_CONFIGURATION_FOUND = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "No division configuration matched the submission.",
		Description: "The payload could not be classified against any active division configuration.",
	}

	RESOURCE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Requested resource was not found.",
	}

	ErrSourceFieldValidation = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Invalid mapping rule.",
		Description: "A mapping rule requires a non-empty source field id.",
	}

	ErrTargetFieldValidation = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Invalid mapping rule.",
		Description: "A mapping rule requires a target table and target field.",
	}

	ErrValueTypeValidation = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Invalid mapping rule value type.",
	}

	ErrDivisionValidation = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Invalid division configuration.",
		Description: "A division requires a non-empty id and name.",
	}

	ErrCustomFieldValidation = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "Invalid custom field declaration.",
		Description: "A custom field declaration requires a field name and at least one division.",
	}
)
