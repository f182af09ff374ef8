package domain

import (
	"strings"
	"time"
)

// BoolFilter matches a nullable boolean column. The zero value matches
// everything.
type BoolFilter struct {
	Set   bool
	Null  bool
	Value bool
}

// ParseBoolFilter accepts "true", "false", or "null".
func ParseBoolFilter(v string) (BoolFilter, error) {
	switch v {
	case "true":
		return BoolFilter{Set: true, Value: true}, nil
	case "false":
		return BoolFilter{Set: true, Value: false}, nil
	case "null":
		return BoolFilter{Set: true, Null: true}, nil
	}
	return BoolFilter{}, ErrValidation("boolean filter must be true, false, or null")
}

// UpdatedFilter restricts rows by their last-updated timestamp.
type UpdatedFilter struct {
	Before *time.Time
	After  *time.Time
}

// ParseUpdatedFilter accepts "before,<iso-datetime>" or "after,<iso-datetime>".
func ParseUpdatedFilter(v string) (UpdatedFilter, error) {
	const usage = "updated must be of the form before/after,iso-datetime"
	parts := strings.SplitN(v, ",", 2)
	if len(parts) != 2 {
		return UpdatedFilter{}, ErrValidation(usage)
	}
	ts, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return UpdatedFilter{}, ErrValidation("bad datetime %q: %v", parts[1], err)
	}
	switch parts[0] {
	case "before":
		return UpdatedFilter{Before: &ts}, nil
	case "after":
		return UpdatedFilter{After: &ts}, nil
	}
	return UpdatedFilter{}, ErrValidation(usage)
}

// ParseEnumList splits a comma-separated filter value and validates every
// element against the static allowed-value table for the named enum column.
func ParseEnumList(column, v string) ([]string, error) {
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	for _, p := range parts {
		if err := ValidateEnum(column, p); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

// FamilyFilter holds list parameters for families.
type FamilyFilter struct {
	CodenamePrefix string
	Updated        UpdatedFilter
	Page           PageRequest
}

// ParticipantFilter holds list parameters for participants.
type ParticipantFilter struct {
	FamilyID       *int64
	CodenamePrefix string
	Sexes          []Sex
	Types          []ParticipantType
	Affected       BoolFilter
	Solved         BoolFilter
	Updated        UpdatedFilter
	Page           PageRequest
}

// DatasetFilter holds list parameters for datasets.
type DatasetFilter struct {
	TissueSampleID *int64
	Types          []DatasetType
	Conditions     []DatasetCondition
	Updated        UpdatedFilter
	Page           PageRequest
}

// AnalysisFilter holds list parameters for analyses.
type AnalysisFilter struct {
	States []AnalysisState
	Since  *time.Time
	Page   PageRequest
}

// VariantFilter holds list parameters for the gene report.
type VariantFilter struct {
	Genes []string
	Page  PageRequest
}
