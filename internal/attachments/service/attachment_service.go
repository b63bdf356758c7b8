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
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/openadmissions/forms-intake-service/internal/attachments/model"
	"github.com/openadmissions/forms-intake-service/internal/attachments/store"
	submissionmodel "github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

type AttachmentServiceInterface interface {
	ExtractAttachments(tx *sql.Tx, recordId string, payload submissionmodel.Payload) []model.Attachment
	GetAttachments(recordId string) ([]model.Attachment, error)
}

// AttachmentService fetches and persists files referenced by a submission.
// Every per-file failure is logged and skipped: a broken upload must never
// take down the parent record.
type AttachmentService struct{}

// GetAttachmentService creates a new instance of AttachmentService.
func GetAttachmentService() AttachmentServiceInterface {

	return &AttachmentService{}
}

// ExtractAttachments scans the payload's known attachment keys, fetches each
// referenced file with a bounded timeout, stores the bytes under a
// collision-resistant name and records metadata inside the submission's
// transaction. The returned slice holds only the attachments that succeeded.
func (as *AttachmentService) ExtractAttachments(tx *sql.Tx, recordId string,
	payload submissionmodel.Payload) []model.Attachment {

	logger := log.GetLogger()

	references := make([]model.FileReference, 0)
	for _, fieldId := range constants.AttachmentFieldIds {
		if raw, ok := payload[fieldId]; ok {
			references = append(references, model.ParseFileReferences(raw)...)
		}
	}
	if len(references) == 0 {
		return nil
	}

	saved := make([]model.Attachment, 0, len(references))
	for _, reference := range references {
		attachment, err := as.fetchAndStore(recordId, reference)
		if err != nil {
			logger.Warn(fmt.Sprintf("Skipping attachment for record: %s", recordId),
				log.String("url", reference.URL), log.Error(err))
			continue
		}
		if err := store.AddAttachment(tx, attachment); err != nil {
			logger.Warn(fmt.Sprintf("Skipping attachment metadata for record: %s", recordId),
				log.String("file", attachment.FileName), log.Error(err))
			continue
		}
		saved = append(saved, attachment)
	}
	return saved
}

func (as *AttachmentService) GetAttachments(recordId string) ([]model.Attachment, error) {

	return store.GetAttachments(recordId)
}

func (as *AttachmentService) fetchAndStore(recordId string, reference model.FileReference) (model.Attachment, error) {

	cfg := config.GetIntakeRuntime().Config.Attachments

	fileName := sanitizeFileName(reference.Name)
	if fileName == "" {
		fileName = sanitizeFileName(fileNameFromURL(reference.URL))
	}
	if fileName == "" {
		return model.Attachment{}, pkgerrors.Errorf("no usable filename in reference %q", reference.URL)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second}
	resp, err := httpClient.Get(reference.URL)
	if err != nil {
		return model.Attachment{}, pkgerrors.Wrap(err, "attachment fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Attachment{}, pkgerrors.Errorf("attachment fetch returned status %d", resp.StatusCode)
	}

	contentType := classifyContentType(resp.Header.Get("Content-Type"))
	if !contentTypeAllowed(contentType, cfg.AllowedContentTypes) {
		return model.Attachment{}, pkgerrors.Errorf("content type %q is not allowed", contentType)
	}

	// One byte beyond the cap distinguishes "exactly at cap" from "too big".
	body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxSizeBytes+1))
	if err != nil {
		return model.Attachment{}, pkgerrors.Wrap(err, "attachment read failed")
	}
	if int64(len(body)) > cfg.MaxSizeBytes {
		return model.Attachment{}, pkgerrors.Errorf("attachment exceeds the %d byte limit", cfg.MaxSizeBytes)
	}

	attachmentId := uuid.New().String()
	storageName := attachmentId + "_" + fileName

	if err := os.MkdirAll(cfg.Directory, 0o750); err != nil {
		return model.Attachment{}, pkgerrors.Wrap(err, "attachment directory creation failed")
	}
	if err := os.WriteFile(filepath.Join(cfg.Directory, storageName), body, 0o640); err != nil {
		return model.Attachment{}, pkgerrors.Wrap(err, "attachment write failed")
	}

	return model.Attachment{
		AttachmentId: attachmentId,
		RecordId:     recordId,
		FileName:     fileName,
		StorageName:  storageName,
		ContentType:  contentType,
		SizeBytes:    int64(len(body)),
		SourceUrl:    reference.URL,
		CreatedAt:    time.Now().UTC().Unix(),
	}, nil
}

// sanitizeFileName strips any directory component from a client-supplied
// name. Names arrive from webhook payloads and percent-decoded URL segments,
// so they can carry separators and dot segments that would otherwise escape
// the attachment directory.
func sanitizeFileName(name string) string {

	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

// fileNameFromURL derives a percent-decoded filename from the URL path.
func fileNameFromURL(rawUrl string) string {

	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return ""
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "/" {
		return ""
	}
	decoded, err := url.PathUnescape(base)
	if err != nil {
		return base
	}
	return decoded
}

func classifyContentType(header string) string {

	contentType := strings.TrimSpace(strings.Split(header, ";")[0])
	if contentType == "" {
		return "application/octet-stream"
	}
	return strings.ToLower(contentType)
}

func contentTypeAllowed(contentType string, allowed []string) bool {

	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, contentType) {
			return true
		}
	}
	return false
}
