package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

func Test_HandleSubmission_OversizedBodyRejected(t *testing.T) {

	body := bytes.NewReader(make([]byte, constants.MaxWebhookBodyBytes+1))
	request := httptest.NewRequest(http.MethodPost, "/intake/submissions", body)
	recorder := httptest.NewRecorder()

	NewSubmissionHandler().HandleSubmission(recorder, request)

	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
}

func Test_ParsePayload_JsonBody(t *testing.T) {

	payload, err := parsePayload("application/json", []byte(`{"form_id": "4", "1.3": "Yaakov"}`))
	require.NoError(t, err)
	assert.Equal(t, "4", payload["form_id"])
	assert.Equal(t, "Yaakov", payload["1.3"])
}

func Test_ParsePayload_UrlEncodedWithEmbeddedJson(t *testing.T) {

	form := url.Values{}
	form.Set("payload", `{"form_id": "4", "27": "goals"}`)

	payload, err := parsePayload("application/x-www-form-urlencoded", []byte(form.Encode()))
	require.NoError(t, err)
	assert.Equal(t, "4", payload["form_id"])
	assert.Equal(t, "goals", payload["27"])
}

func Test_ParsePayload_UrlEncodedMissingPayloadKey(t *testing.T) {

	form := url.Values{}
	form.Set("something_else", "value")

	_, err := parsePayload("application/x-www-form-urlencoded", []byte(form.Encode()))
	require.Error(t, err)

	var clientError *errors.ClientError
	require.ErrorAs(t, err, &clientError)
	assert.Equal(t, errors.INVALID_REQUEST_FORMAT.Code, clientError.Code)
}

func Test_ParsePayload_InvalidJsonRejected(t *testing.T) {

	_, err := parsePayload("application/json", []byte(`not json`))
	require.Error(t, err)

	var clientError *errors.ClientError
	require.ErrorAs(t, err, &clientError)
}
