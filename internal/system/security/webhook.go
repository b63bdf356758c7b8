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

package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

// VerifyWebhookSignature checks the keyed-hash signature over the raw request
// body. When no signing secret is configured, verification is disabled and
// every request is accepted.
func VerifyWebhookSignature(r *http.Request, rawBody []byte) error {

	secret := config.GetIntakeRuntime().Config.Webhook.SigningSecret
	if secret == "" {
		return nil
	}

	provided := r.Header.Get(constants.SignatureHeader)
	if provided == "" {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing webhook signature header",
		}, http.StatusUnauthorized)
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(ComputeSignature(secret, rawBody))) != 1 {
		log.GetLogger().Debug("Webhook signature mismatch")
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Invalid webhook signature",
		}, http.StatusUnauthorized)
	}

	return nil
}

// ComputeSignature returns the hex-encoded HMAC-SHA256 of body under secret.
func ComputeSignature(secret string, body []byte) string {

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
