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

package model

import (
	"encoding/json"
	"strings"
)

// Attachment records one fetched file belonging to an application record.
type Attachment struct {
	AttachmentId string `json:"attachment_id"`
	RecordId     string `json:"record_id"`
	FileName     string `json:"file_name"`
	StorageName  string `json:"storage_name"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	SourceUrl    string `json:"source_url"`
	CreatedAt    int64  `json:"created_at"`
}

// FileReference is one remote file pointed at by a submission payload.
type FileReference struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// ParseFileReferences normalizes the attachment value found in a payload
// into a flat list of file references. Form systems send this in four
// shapes: a single object, a list of objects, a mapping keyed by slot name,
// or any of those JSON-encoded as a string. Values it cannot interpret are
// dropped silently; a submission without usable references yields an empty
// list, never an error.
func ParseFileReferences(raw interface{}) []FileReference {

	switch value := raw.(type) {
	case nil:
		return nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			// A bare string is treated as a URL.
			if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
				return []FileReference{{URL: trimmed}}
			}
			return nil
		}
		return ParseFileReferences(parsed)
	case map[string]interface{}:
		if ref, ok := referenceFromObject(value); ok {
			return []FileReference{ref}
		}
		// Keyed mapping of slot name to reference object.
		refs := make([]FileReference, 0, len(value))
		for _, entry := range value {
			refs = append(refs, ParseFileReferences(entry)...)
		}
		return refs
	case []interface{}:
		refs := make([]FileReference, 0, len(value))
		for _, entry := range value {
			refs = append(refs, ParseFileReferences(entry)...)
		}
		return refs
	default:
		return nil
	}
}

func referenceFromObject(obj map[string]interface{}) (FileReference, bool) {

	url, _ := obj["url"].(string)
	url = strings.TrimSpace(url)
	if url == "" {
		return FileReference{}, false
	}
	name, _ := obj["name"].(string)
	return FileReference{URL: url, Name: strings.TrimSpace(name)}, true
}
