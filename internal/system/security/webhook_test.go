package security

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

func setupWebhookRuntime(t *testing.T, secret string) {
	t.Helper()

	_ = log.Init("debug")
	config.ResetIntakeRuntimeForTest(t.TempDir(), &config.Config{
		Webhook: config.WebhookConfig{SigningSecret: secret},
	})
}

func signedRequest(body []byte, signature string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/intake/submissions", bytes.NewReader(body))
	if signature != "" {
		r.Header.Set(constants.SignatureHeader, signature)
	}
	return r
}

func Test_VerifyWebhookSignature_ValidSignatureAccepted(t *testing.T) {

	setupWebhookRuntime(t, "topsecret")
	body := []byte(`{"form_id":"4"}`)

	r := signedRequest(body, ComputeSignature("topsecret", body))
	assert.NoError(t, VerifyWebhookSignature(r, body))
}

func Test_VerifyWebhookSignature_MismatchRejected(t *testing.T) {

	setupWebhookRuntime(t, "topsecret")
	body := []byte(`{"form_id":"4"}`)

	r := signedRequest(body, ComputeSignature("wrongsecret", body))
	err := VerifyWebhookSignature(r, body)
	require.Error(t, err)

	var clientError *errors.ClientError
	require.ErrorAs(t, err, &clientError)
	assert.Equal(t, http.StatusUnauthorized, clientError.StatusCode)
}

func Test_VerifyWebhookSignature_MissingHeaderRejected(t *testing.T) {

	setupWebhookRuntime(t, "topsecret")
	body := []byte(`{}`)

	err := VerifyWebhookSignature(signedRequest(body, ""), body)
	require.Error(t, err)
}

func Test_VerifyWebhookSignature_DisabledWithoutSecret(t *testing.T) {

	setupWebhookRuntime(t, "")
	body := []byte(`{}`)

	assert.NoError(t, VerifyWebhookSignature(signedRequest(body, ""), body))
}
