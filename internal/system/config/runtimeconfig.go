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

package config

import "sync"

// IntakeRuntime holds the runtime configuration for the intake server.
type IntakeRuntime struct {
	IntakeHome string `yaml:"intake_home"`
	Config     Config `yaml:"config"`
}

var (
	runtimeConfig *IntakeRuntime
	once          sync.Once
)

// InitializeIntakeRuntime initializes the IntakeRuntime configuration.
func InitializeIntakeRuntime(intakeHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &IntakeRuntime{
			IntakeHome: intakeHome,
			Config:     *config,
		}
	})

	return nil
}

// GetIntakeRuntime returns the IntakeRuntime configuration.
func GetIntakeRuntime() *IntakeRuntime {

	if runtimeConfig == nil {
		panic("IntakeRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetIntakeRuntimeForTest replaces the runtime configuration, bypassing the
// once guard. Only tests call this.
func ResetIntakeRuntimeForTest(intakeHome string, config *Config) {

	runtimeConfig = &IntakeRuntime{
		IntakeHome: intakeHome,
		Config:     *config,
	}
}
