package domain

import "time"

// User represents an account that can authenticate against the backend.
type User struct {
	ID        int64
	Username  string
	Email     string
	IsAdmin   bool
	LastLogin *time.Time
	CreatedAt time.Time
}

// Group is a named permission group. Datasets are shared with groups; users
// see exactly the entity subgraph reachable from the datasets of their groups.
type Group struct {
	ID        int64
	Code      string
	Name      string
	CreatedAt time.Time
}

// Family is the root of the sample hierarchy.
type Family struct {
	ID        int64
	Codename  string
	CreatedAt time.Time
	CreatedBy int64
	UpdatedAt time.Time
	UpdatedBy int64
}

// Participant is an enrolled individual belonging to a family.
type Participant struct {
	ID        int64
	FamilyID  int64
	Codename  string
	Sex       Sex
	Type      ParticipantType
	Affected  bool
	Solved    *bool
	Notes     *string
	CreatedAt time.Time
	CreatedBy int64
	UpdatedAt time.Time
	UpdatedBy int64
}

// TissueSample is a physical specimen taken from a participant.
type TissueSample struct {
	ID             int64
	ParticipantID  int64
	Type           TissueSampleType
	Processing     *TissueProcessing
	ExtractionDate *time.Time
	Notes          *string
	CreatedAt      time.Time
	CreatedBy      int64
	UpdatedAt      time.Time
	UpdatedBy      int64
}

// Dataset is a sequencing result derived from a tissue sample. Visibility of
// the whole hierarchy derives from the dataset-group link table.
type Dataset struct {
	ID               int64
	TissueSampleID   int64
	Type             DatasetType
	Condition        DatasetCondition
	InputPath        string
	SequencingCentre string
	Notes            *string
	GroupIDs         []int64
	EnteredAt        time.Time
	EnteredBy        int64
	UpdatedAt        time.Time
	UpdatedBy        int64
}

// Analysis is a pipeline run over one or more datasets.
type Analysis struct {
	ID          int64
	PipelineID  int64
	State       AnalysisState
	QsubID      *int64
	ResultPath  *string
	AssigneeID  *int64
	RequesterID int64
	RequestedAt time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
	Notes       *string
	DatasetIDs  []int64
	UpdatedAt   time.Time
	UpdatedBy   int64
}

// Pipeline identifies an analysis pipeline. The metadataset types a pipeline
// supports come from the classification table, not the metastore.
type Pipeline struct {
	ID      int64
	Name    string
	Version string
}

// Variant is a single called variant used by the gene report. Rows are only
// reachable through the visibility scope of their dataset.
type Variant struct {
	ID                  int64
	DatasetID           int64
	Gene                string
	Position            string
	ReferenceAllele     string
	AltAllele           string
	Variation           *string
	RefseqChange        *string
	Depth               *int64
	Zygosity            *string
	ParticipantCodename string
	FamilyCodename      string
}
