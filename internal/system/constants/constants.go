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

package constants

const ApiBasePath = "/api/v1"

// Mapping rule value types.
const (
	TextValueType   = "text"
	DateValueType   = "date"
	NumberValueType = "number"
	JsonValueType   = "json"
)

var AllowedValueTypes = map[string]bool{
	TextValueType:   true,
	DateValueType:   true,
	NumberValueType: true,
	JsonValueType:   true,
}

// ResidualTargetField is the reserved target field name that routes a mapped
// value into the record's residual data instead of a flat column.
const ResidualTargetField = "residual_data"

// RecordsTable is the canonical target table for flat application fields.
const RecordsTable = "application_records"

// Initial lifecycle status assigned to every normalized record.
const RecordStatusReceived = "received"

// Date patterns tried in order by value coercion. The order is the contract:
// an ambiguous string such as "03/04/2024" is resolved as MM/DD before DD/MM.
var DatePatterns = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
}

// Known external form-system key prefixes tried by the field accessor.
var FieldIdPrefixes = []string{"input_", "field_"}

// FormIdentifierField is the payload key carrying the external form id.
const FormIdentifierField = "form_id"

// FormIdentifierBonus dominates any plausible strong-signal field count so
// that an exact form id match always decides classification.
const FormIdentifierBonus = 1000

// EmbeddedPayloadKey carries the JSON payload when a webhook arrives as
// URL-encoded form data instead of a JSON body.
const EmbeddedPayloadKey = "payload"

// SignatureHeader carries the hex-encoded HMAC-SHA256 of the raw body.
const SignatureHeader = "X-Intake-Signature"

// MaxWebhookBodyBytes bounds the webhook request body. Form payloads are
// small key/value maps; file content arrives by reference, never inline.
const MaxWebhookBodyBytes = 1 << 20

// Display name components joined into student_name when no rule maps it.
const (
	StudentNameField = "student_name"
	FirstNameField   = "first_name"
	MiddleNameField  = "middle_name"
	LastNameField    = "last_name"
)

// KnownResidualKeys maps well-known external field ids to stable residual
// keys, taking precedence over keys derived from rule labels.
var KnownResidualKeys = map[string]string{
	"27":  "student_goals",
	"28":  "previous_school",
	"29":  "rabbinic_reference",
	"8.1": "parent_occupation",
}

// Payload keys scanned for file references by the attachment extractor.
var AttachmentFieldIds = []string{"attachments", "file_upload", "files"}

// SubmissionTraceCapacity bounds the in-process debug ring buffer.
const SubmissionTraceCapacity = 64

type ContextKey string

const TraceIDContextKey = ContextKey("traceID")
