package domain

import (
	"sort"
	"strings"
)

// Sex is the recorded sex of a participant.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
	SexOther  Sex = "Other"
)

// ParticipantType describes the role of a participant within a family.
type ParticipantType string

const (
	ParticipantProband ParticipantType = "Proband"
	ParticipantParent  ParticipantType = "Parent"
	ParticipantSibling ParticipantType = "Sibling"
)

// TissueSampleType describes the tissue a sample was extracted from.
type TissueSampleType string

const (
	TissueBlood      TissueSampleType = "Blood"
	TissueSaliva     TissueSampleType = "Saliva"
	TissueLymphocyte TissueSampleType = "Lymphocyte"
	TissueFibroblast TissueSampleType = "Fibroblast"
	TissueMuscle     TissueSampleType = "Muscle"
	TissueSkin       TissueSampleType = "Skin"
	TissueUrine      TissueSampleType = "Urine"
	TissuePlasma     TissueSampleType = "Plasma"
	TissueKidney     TissueSampleType = "Kidney"
	TissueUnknown    TissueSampleType = "Unknown"
)

// TissueProcessing describes how a tissue sample was preserved.
type TissueProcessing string

const (
	ProcessingFreshFrozen  TissueProcessing = "FF"
	ProcessingFormaldehyde TissueProcessing = "FFPE"
)

// DatasetType is the sequencing protocol code of a dataset. Each code maps to
// exactly one MetaDatasetType in the classification table.
type DatasetType string

const (
	DatasetCES    DatasetType = "CES"
	DatasetCGS    DatasetType = "CGS"
	DatasetCPS    DatasetType = "CPS"
	DatasetRES    DatasetType = "RES"
	DatasetRGS    DatasetType = "RGS"
	DatasetRLM    DatasetType = "RLM"
	DatasetRMM    DatasetType = "RMM"
	DatasetRRS    DatasetType = "RRS"
	DatasetRTA    DatasetType = "RTA"
	DatasetWES    DatasetType = "WES"
	DatasetWGS    DatasetType = "WGS"
	DatasetRNASeq DatasetType = "RNASeq"
	DatasetRCS    DatasetType = "RCS"
	DatasetRDC    DatasetType = "RDC"
	DatasetRDE    DatasetType = "RDE"
)

// DatasetCondition distinguishes control, germline, and somatic datasets.
type DatasetCondition string

const (
	ConditionControl  DatasetCondition = "Control"
	ConditionGermLine DatasetCondition = "GermLine"
	ConditionSomatic  DatasetCondition = "Somatic"
)

// AnalysisState is the workflow state of an analysis.
type AnalysisState string

const (
	AnalysisRequested AnalysisState = "Requested"
	AnalysisRunning   AnalysisState = "Running"
	AnalysisDone      AnalysisState = "Done"
	AnalysisError     AnalysisState = "Error"
	AnalysisCancelled AnalysisState = "Cancelled"
)

// MetaDatasetType is the coarse classification a pipeline declares support for.
type MetaDatasetType string

const (
	MetaGenome MetaDatasetType = "Genome"
	MetaExome  MetaDatasetType = "Exome"
	MetaRNA    MetaDatasetType = "RNA"
	MetaOther  MetaDatasetType = "Other"
)

// enumValues is the static allowed-value table for every enum column. Values
// are validated against this table before a mutation is attempted, never by
// inspecting the database schema.
var enumValues = map[string][]string{
	"sex":              {string(SexMale), string(SexFemale), string(SexOther)},
	"participant_type": {string(ParticipantProband), string(ParticipantParent), string(ParticipantSibling)},
	"tissue_sample_type": {
		string(TissueBlood), string(TissueSaliva), string(TissueLymphocyte),
		string(TissueFibroblast), string(TissueMuscle), string(TissueSkin),
		string(TissueUrine), string(TissuePlasma), string(TissueKidney), string(TissueUnknown),
	},
	"tissue_processing": {string(ProcessingFreshFrozen), string(ProcessingFormaldehyde)},
	"dataset_type": {
		string(DatasetCES), string(DatasetCGS), string(DatasetCPS), string(DatasetRES),
		string(DatasetRGS), string(DatasetRLM), string(DatasetRMM), string(DatasetRRS),
		string(DatasetRTA), string(DatasetWES), string(DatasetWGS), string(DatasetRNASeq),
		string(DatasetRCS), string(DatasetRDC), string(DatasetRDE),
	},
	"condition": {string(ConditionControl), string(ConditionGermLine), string(ConditionSomatic)},
	"analysis_state": {
		string(AnalysisRequested), string(AnalysisRunning), string(AnalysisDone),
		string(AnalysisError), string(AnalysisCancelled),
	},
	"metadataset_type": {string(MetaGenome), string(MetaExome), string(MetaRNA), string(MetaOther)},
}

// ValidateEnum checks value against the static allowed-value table for the
// named enum column. The returned error lists the accepted values.
func ValidateEnum(column, value string) error {
	allowed, ok := enumValues[column]
	if !ok {
		return ErrValidation("unknown enum column %q", column)
	}
	for _, v := range allowed {
		if v == value {
			return nil
		}
	}
	return ErrValidation("invalid value %q for %q: must be one of %s", value, column, strings.Join(allowed, ", "))
}

// EnumValues returns the accepted values for the named enum column in sorted
// order, or nil when the column is not an enum.
func EnumValues(column string) []string {
	allowed, ok := enumValues[column]
	if !ok {
		return nil
	}
	out := append([]string(nil), allowed...)
	sort.Strings(out)
	return out
}

// ParseSex validates and converts a raw sex value.
func ParseSex(v string) (Sex, error) {
	if err := ValidateEnum("sex", v); err != nil {
		return "", err
	}
	return Sex(v), nil
}

// ParseParticipantType validates and converts a raw participant type.
func ParseParticipantType(v string) (ParticipantType, error) {
	if err := ValidateEnum("participant_type", v); err != nil {
		return "", err
	}
	return ParticipantType(v), nil
}

// ParseDatasetType validates and converts a raw dataset type code.
func ParseDatasetType(v string) (DatasetType, error) {
	if err := ValidateEnum("dataset_type", v); err != nil {
		return "", err
	}
	return DatasetType(v), nil
}

// ParseAnalysisState validates and converts a raw analysis state.
func ParseAnalysisState(v string) (AnalysisState, error) {
	if err := ValidateEnum("analysis_state", v); err != nil {
		return "", err
	}
	return AnalysisState(v), nil
}

// ParseTissueSampleType validates and converts a raw tissue sample type.
func ParseTissueSampleType(v string) (TissueSampleType, error) {
	if err := ValidateEnum("tissue_sample_type", v); err != nil {
		return "", err
	}
	return TissueSampleType(v), nil
}
