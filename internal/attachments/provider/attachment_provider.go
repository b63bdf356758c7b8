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

package provider

import "github.com/openadmissions/forms-intake-service/internal/attachments/service"

// AttachmentProviderInterface defines the interface for obtaining the attachment service.
type AttachmentProviderInterface interface {
	GetAttachmentService() service.AttachmentServiceInterface
}

// AttachmentProvider is the implementation of AttachmentProviderInterface.
type AttachmentProvider struct{}

// NewAttachmentProvider creates a new instance of AttachmentProvider.
func NewAttachmentProvider() AttachmentProviderInterface {

	return &AttachmentProvider{}
}

// GetAttachmentService returns the attachment service implementation.
func (ap *AttachmentProvider) GetAttachmentService() service.AttachmentServiceInterface {

	return service.GetAttachmentService()
}
