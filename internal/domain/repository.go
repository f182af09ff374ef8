package domain

import "context"

// UserRepository provides CRUD operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, page PageRequest) ([]User, int64, error)
	Delete(ctx context.Context, id int64) error
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	// GroupIDs returns the ids of the groups the user belongs to.
	GroupIDs(ctx context.Context, userID int64) ([]int64, error)
}

// GroupRepository provides CRUD operations for groups and membership.
type GroupRepository interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetByCode(ctx context.Context, code string) (*Group, error)
	List(ctx context.Context, page PageRequest) ([]Group, int64, error)
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	MemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	CountDatasets(ctx context.Context, groupID int64) (int64, error)
}

// FamilyRepository provides scope-qualified access to families.
type FamilyRepository interface {
	Create(ctx context.Context, f *Family) (*Family, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*Family, error)
	List(ctx context.Context, scope Scope, filter FamilyFilter) ([]Family, int64, error)
	Update(ctx context.Context, f *Family) (*Family, error)
	Delete(ctx context.Context, id int64) error
	CountParticipants(ctx context.Context, id int64) (int64, error)
}

// ParticipantRepository provides scope-qualified access to participants.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) (*Participant, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*Participant, error)
	List(ctx context.Context, scope Scope, filter ParticipantFilter) ([]Participant, int64, error)
	Update(ctx context.Context, p *Participant) (*Participant, error)
	Delete(ctx context.Context, id int64) error
	CountTissueSamples(ctx context.Context, id int64) (int64, error)
}

// TissueSampleRepository provides scope-qualified access to tissue samples.
type TissueSampleRepository interface {
	Create(ctx context.Context, t *TissueSample) (*TissueSample, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*TissueSample, error)
	ListByParticipant(ctx context.Context, scope Scope, participantID int64, page PageRequest) ([]TissueSample, int64, error)
	Update(ctx context.Context, t *TissueSample) (*TissueSample, error)
	Delete(ctx context.Context, id int64) error
	CountDatasets(ctx context.Context, id int64) (int64, error)
}

// DatasetRepository provides scope-qualified access to datasets and their
// group links.
type DatasetRepository interface {
	// Create inserts the dataset and its group links in one transaction.
	Create(ctx context.Context, d *Dataset) (*Dataset, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*Dataset, error)
	List(ctx context.Context, scope Scope, filter DatasetFilter) ([]Dataset, int64, error)
	Update(ctx context.Context, d *Dataset) (*Dataset, error)
	SetGroups(ctx context.Context, id int64, groupIDs []int64) error
	Delete(ctx context.Context, id int64) error
	CountAnalyses(ctx context.Context, id int64) (int64, error)
	// TypesByIDs resolves dataset ids to their type codes within scope.
	// Ids that are absent or out of scope are missing from the result.
	TypesByIDs(ctx context.Context, scope Scope, ids []int64) (map[int64]DatasetType, error)
	// ListUngrouped returns datasets with zero group links. Only admins can
	// reach these records; they are surfaced here rather than silently
	// hidden by the scope predicate.
	ListUngrouped(ctx context.Context, page PageRequest) ([]Dataset, int64, error)
}

// AnalysisRepository provides scope-qualified access to analyses.
type AnalysisRepository interface {
	// Create inserts the analysis row and all dataset link rows in a single
	// transaction; on any failure nothing is persisted.
	Create(ctx context.Context, a *Analysis) (*Analysis, error)
	GetByID(ctx context.Context, scope Scope, id int64) (*Analysis, error)
	List(ctx context.Context, scope Scope, filter AnalysisFilter) ([]Analysis, int64, error)
	Update(ctx context.Context, a *Analysis) (*Analysis, error)
	Delete(ctx context.Context, id int64) error
}

// PipelineRepository provides access to registered pipelines.
type PipelineRepository interface {
	Create(ctx context.Context, p *Pipeline) (*Pipeline, error)
	GetByID(ctx context.Context, id int64) (*Pipeline, error)
	List(ctx context.Context, page PageRequest) ([]Pipeline, int64, error)
}

// VariantRepository provides scope-qualified access to called variants for
// the gene report.
type VariantRepository interface {
	List(ctx context.Context, scope Scope, filter VariantFilter) ([]Variant, int64, error)
}

// AuditRepository provides operations for audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
}
