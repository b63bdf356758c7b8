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
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/database/provider"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
	"github.com/openadmissions/forms-intake-service/test/setup"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	config.ResetIntakeRuntimeForTest(".", &config.Config{
		Log: config.LogConfig{LogLevel: "debug"},
		Attachments: config.AttachmentConfig{
			Directory:           os.TempDir(),
			FetchTimeoutSeconds: 5,
			MaxSizeBytes:        1 << 20,
		},
		Cache: config.CacheConfig{RuleTTLSeconds: 1},
	})
	_ = log.Init("debug")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	provider.SetTestDB(pg.DB)
	if err := setup.CreateTablesFromFile(pg.DB, "../../dbscripts/schema.sql"); err != nil {
		fmt.Println("Failed to create tables from schema:", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = pg.Container.Terminate(ctx)
	os.Exit(code)
}
