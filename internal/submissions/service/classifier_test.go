package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	divisionmodel "github.com/openadmissions/forms-intake-service/internal/divisions/model"
	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

func testDivisions() []divisionmodel.DivisionConfig {
	return []divisionmodel.DivisionConfig{
		{
			DivisionId:   "high-school",
			Name:         "High School",
			FormId:       "4",
			SignalFields: []string{"1.3", "1.6"},
			Active:       true,
		},
		{
			DivisionId:   "beis-medrash",
			Name:         "Beis Medrash",
			FormId:       "7",
			SignalFields: []string{"father_birth_date", "student_goals"},
			Active:       true,
		},
	}
}

func Test_Classify_FormIdentifierBonusDominates(t *testing.T) {

	// Every strong signal points at beis-medrash, but the form id says
	// high-school; the identifier must win.
	payload := model.Payload{
		"form_id":           "4",
		"father_birth_date": "1965-05-10",
		"student_goals":     "learning",
	}

	divisionId, err := ClassifyDivision(payload, testDivisions())
	require.NoError(t, err)
	assert.Equal(t, "high-school", divisionId)
}

func Test_Classify_StrongSignalsDecideWithoutFormId(t *testing.T) {

	payload := model.Payload{
		"father_birth_date": "1965-05-10",
		"student_goals":     "Torah learning",
	}

	divisionId, err := ClassifyDivision(payload, testDivisions())
	require.NoError(t, err)
	assert.Equal(t, "beis-medrash", divisionId)
}

func Test_Classify_NumericFormIdentifierMatches(t *testing.T) {

	// JSON bodies carry the form id as a bare number; it must still match
	// the configured string identifier.
	payload := model.Payload{
		"form_id": float64(7),
		"1.3":     "Yaakov",
		"1.6":     "Goldstein",
	}

	divisionId, err := ClassifyDivision(payload, testDivisions())
	require.NoError(t, err)
	assert.Equal(t, "beis-medrash", divisionId)
}

func Test_Classify_NoSignalsFallsBackToFirstRegistered(t *testing.T) {

	payload := model.Payload{"unrelated": "value"}

	divisionId, err := ClassifyDivision(payload, testDivisions())
	require.NoError(t, err)
	assert.Equal(t, "high-school", divisionId)
}

func Test_Classify_InactiveDivisionsIgnored(t *testing.T) {

	divisions := testDivisions()
	divisions[0].Active = false

	payload := model.Payload{"form_id": "4"}

	divisionId, err := ClassifyDivision(payload, divisions)
	require.NoError(t, err)
	assert.Equal(t, "beis-medrash", divisionId)
}

func Test_Classify_NoConfigurationIsReportableFailure(t *testing.T) {

	_, err := ClassifyDivision(model.Payload{"form_id": "4"}, nil)
	require.Error(t, err)

	var clientError *errors.ClientError
	require.ErrorAs(t, err, &clientError)
	assert.Equal(t, errors.NO_CONFIGURATION_FOUND.Code, clientError.Code)
}
