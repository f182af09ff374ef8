package domain

import "time"

// CreateFamilyRequest holds parameters for creating a family.
type CreateFamilyRequest struct {
	Codename string
}

// Validate checks that the request is well-formed.
func (r *CreateFamilyRequest) Validate() error {
	if r.Codename == "" {
		return ErrValidation("codename is required")
	}
	return nil
}

// UpdateFamilyRequest holds the mutable family fields. Nil fields are left
// unchanged.
type UpdateFamilyRequest struct {
	Codename *string
}

// Validate checks that the request is well-formed.
func (r *UpdateFamilyRequest) Validate() error {
	if r.Codename != nil && *r.Codename == "" {
		return ErrValidation("codename must not be empty")
	}
	return nil
}

// CreateParticipantRequest holds parameters for enrolling a participant.
type CreateParticipantRequest struct {
	FamilyID int64
	Codename string
	Sex      string
	Type     string
	Affected bool
	Solved   *bool
	Notes    *string
}

// Validate checks required fields and enum values against the static tables.
func (r *CreateParticipantRequest) Validate() error {
	if r.FamilyID <= 0 {
		return ErrValidation("family_id is required")
	}
	if r.Codename == "" {
		return ErrValidation("codename is required")
	}
	if err := ValidateEnum("sex", r.Sex); err != nil {
		return err
	}
	return ValidateEnum("participant_type", r.Type)
}

// UpdateParticipantRequest holds the mutable participant fields. Nil fields
// are left unchanged.
type UpdateParticipantRequest struct {
	Codename *string
	Sex      *string
	Type     *string
	Affected *bool
	Solved   *bool
	Notes    *string
}

// Validate checks enum values against the static tables.
func (r *UpdateParticipantRequest) Validate() error {
	if r.Codename != nil && *r.Codename == "" {
		return ErrValidation("codename must not be empty")
	}
	if r.Sex != nil {
		if err := ValidateEnum("sex", *r.Sex); err != nil {
			return err
		}
	}
	if r.Type != nil {
		if err := ValidateEnum("participant_type", *r.Type); err != nil {
			return err
		}
	}
	return nil
}

// CreateTissueSampleRequest holds parameters for recording a tissue sample.
type CreateTissueSampleRequest struct {
	ParticipantID  int64
	Type           string
	Processing     *string
	ExtractionDate *time.Time
	Notes          *string
}

// Validate checks required fields and enum values against the static tables.
func (r *CreateTissueSampleRequest) Validate() error {
	if r.ParticipantID <= 0 {
		return ErrValidation("participant_id is required")
	}
	if err := ValidateEnum("tissue_sample_type", r.Type); err != nil {
		return err
	}
	if r.Processing != nil {
		return ValidateEnum("tissue_processing", *r.Processing)
	}
	return nil
}

// UpdateTissueSampleRequest holds the mutable tissue sample fields. Nil
// fields are left unchanged.
type UpdateTissueSampleRequest struct {
	Type           *string
	Processing     *string
	ExtractionDate *time.Time
	Notes          *string
}

// Validate checks enum values against the static tables.
func (r *UpdateTissueSampleRequest) Validate() error {
	if r.Type != nil {
		if err := ValidateEnum("tissue_sample_type", *r.Type); err != nil {
			return err
		}
	}
	if r.Processing != nil {
		return ValidateEnum("tissue_processing", *r.Processing)
	}
	return nil
}

// CreateDatasetRequest holds parameters for registering a dataset.
type CreateDatasetRequest struct {
	TissueSampleID   int64
	Type             string
	Condition        string
	InputPath        string
	SequencingCentre string
	Notes            *string
	GroupIDs         []int64
}

// Validate checks required fields, enum values, and the at-least-one-group
// invariant: a dataset created with no groups would be unreachable for every
// non-admin, so creation rejects it outright.
func (r *CreateDatasetRequest) Validate() error {
	if r.TissueSampleID <= 0 {
		return ErrValidation("tissue_sample_id is required")
	}
	if err := ValidateEnum("dataset_type", r.Type); err != nil {
		return err
	}
	if err := ValidateEnum("condition", r.Condition); err != nil {
		return err
	}
	if r.InputPath == "" {
		return ErrValidation("input_path is required")
	}
	if r.SequencingCentre == "" {
		return ErrValidation("sequencing_centre is required")
	}
	if len(r.GroupIDs) == 0 {
		return ErrValidation("a dataset must be shared with at least one group")
	}
	return nil
}

// UpdateDatasetRequest holds the mutable dataset fields. Nil fields are left
// unchanged.
type UpdateDatasetRequest struct {
	Type             *string
	Condition        *string
	InputPath        *string
	SequencingCentre *string
	Notes            *string
}

// Validate checks enum values against the static tables.
func (r *UpdateDatasetRequest) Validate() error {
	if r.Type != nil {
		if err := ValidateEnum("dataset_type", *r.Type); err != nil {
			return err
		}
	}
	if r.Condition != nil {
		return ValidateEnum("condition", *r.Condition)
	}
	return nil
}

// CreateAnalysisRequest holds parameters for requesting an analysis.
type CreateAnalysisRequest struct {
	DatasetIDs []int64
	PipelineID int64
}

// Validate checks that the request names datasets and a pipeline.
func (r *CreateAnalysisRequest) Validate() error {
	if len(r.DatasetIDs) == 0 {
		return ErrValidation("at least one dataset id is required")
	}
	if r.PipelineID <= 0 {
		return ErrValidation("pipeline_id is required")
	}
	return nil
}

// UpdateAnalysisRequest holds the mutable analysis fields. Nil fields are
// left unchanged. AssigneeUsername resolves to a user id; an empty string
// clears the assignee.
type UpdateAnalysisRequest struct {
	State            *string
	QsubID           *int64
	ResultPath       *string
	AssigneeUsername *string
	StartedAt        *time.Time
	FinishedAt       *time.Time
	Notes            *string
}

// Validate checks enum values against the static tables.
func (r *UpdateAnalysisRequest) Validate() error {
	if r.State != nil {
		return ValidateEnum("analysis_state", *r.State)
	}
	return nil
}

// CreateUserRequest holds parameters for provisioning a user account.
type CreateUserRequest struct {
	Username string
	Email    string
	IsAdmin  bool
}

// Validate checks that the request is well-formed.
func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return ErrValidation("username is required")
	}
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	return nil
}

// CreateGroupRequest holds parameters for creating a permission group.
type CreateGroupRequest struct {
	Code string
	Name string
}

// Validate checks that the request is well-formed.
func (r *CreateGroupRequest) Validate() error {
	if r.Code == "" {
		return ErrValidation("code is required")
	}
	if r.Name == "" {
		return ErrValidation("name is required")
	}
	return nil
}
