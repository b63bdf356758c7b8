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

import "github.com/openadmissions/forms-intake-service/internal/divisions/service"

// DivisionProviderInterface defines the interface for obtaining the division service.
type DivisionProviderInterface interface {
	GetDivisionService() service.DivisionServiceInterface
}

// DivisionProvider is the implementation of DivisionProviderInterface.
type DivisionProvider struct{}

// NewDivisionProvider creates a new instance of DivisionProvider.
func NewDivisionProvider() DivisionProviderInterface {

	return &DivisionProvider{}
}

// GetDivisionService returns the division service implementation.
func (dp *DivisionProvider) GetDivisionService() service.DivisionServiceInterface {

	return service.GetDivisionService()
}
