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
	"fmt"

	_ "github.com/lib/pq"

	"github.com/openadmissions/forms-intake-service/internal/attachments/model"
	"github.com/openadmissions/forms-intake-service/internal/system/database/provider"
	errors2 "github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

// AddAttachment persists attachment metadata inside the submission's
// transaction so that record and attachment rows commit together.
func AddAttachment(tx *sql.Tx, attachment model.Attachment) error {

	logger := log.GetLogger()

	query := `INSERT INTO attachments
		(attachment_id, record_id, file_name, storage_name, content_type, size_bytes, source_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(query, attachment.AttachmentId, attachment.RecordId, attachment.FileName,
		attachment.StorageName, attachment.ContentType, attachment.SizeBytes,
		attachment.SourceUrl, attachment.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on inserting attachment: %s for record: %s",
			attachment.FileName, attachment.RecordId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_ATTACHMENT.Code,
			Message:     errors2.ADD_ATTACHMENT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetAttachments returns the attachments recorded for one application record.
func GetAttachments(recordId string) ([]model.Attachment, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching attachments of record: %s", recordId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RECORDS.Code,
			Message:     errors2.FETCH_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT attachment_id, record_id, file_name, storage_name, content_type, size_bytes, source_url, created_at
		FROM attachments WHERE record_id = $1 ORDER BY created_at ASC, attachment_id ASC`

	rows, err := dbClient.ExecuteQuery(query, recordId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed on fetching attachments for record: %s", recordId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RECORDS.Code,
			Message:     errors2.FETCH_RECORDS.Message,
			Description: errorMsg,
		}, err)
	}

	attachments := make([]model.Attachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, model.Attachment{
			AttachmentId: asString(row["attachment_id"]),
			RecordId:     asString(row["record_id"]),
			FileName:     asString(row["file_name"]),
			StorageName:  asString(row["storage_name"]),
			ContentType:  asString(row["content_type"]),
			SizeBytes:    asInt64(row["size_bytes"]),
			SourceUrl:    asString(row["source_url"]),
			CreatedAt:    asInt64(row["created_at"]),
		})
	}
	return attachments, nil
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
