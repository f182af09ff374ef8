package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnum(t *testing.T) {
	assert.NoError(t, ValidateEnum("sex", "Female"))
	assert.NoError(t, ValidateEnum("dataset_type", "WGS"))
	assert.NoError(t, ValidateEnum("analysis_state", "Cancelled"))

	var verr *ValidationError

	err := ValidateEnum("sex", "female")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Male, Female, Other")

	err = ValidateEnum("no_such_column", "x")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "unknown enum column")
}

func TestEnumValues(t *testing.T) {
	got := EnumValues("tissue_processing")
	assert.Equal(t, []string{"FF", "FFPE"}, got)

	assert.Nil(t, EnumValues("nonexistent"))

	// Returned slice is a copy, not a view into the table.
	vals := EnumValues("condition")
	vals[0] = "mutated"
	assert.NotContains(t, EnumValues("condition"), "mutated")
}

func TestParseHelpers(t *testing.T) {
	sex, err := ParseSex("Male")
	require.NoError(t, err)
	assert.Equal(t, SexMale, sex)

	_, err = ParseSex("M")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	pt, err := ParseParticipantType("Proband")
	require.NoError(t, err)
	assert.Equal(t, ParticipantProband, pt)

	dt, err := ParseDatasetType("RNASeq")
	require.NoError(t, err)
	assert.Equal(t, DatasetRNASeq, dt)

	_, err = ParseDatasetType("rnaseq")
	assert.ErrorAs(t, err, &verr)

	st, err := ParseAnalysisState("Running")
	require.NoError(t, err)
	assert.Equal(t, AnalysisRunning, st)

	tt, err := ParseTissueSampleType("Fibroblast")
	require.NoError(t, err)
	assert.Equal(t, TissueFibroblast, tt)
}
