package contract

// Merge fill strategies. They decide, field by field, which record supplies
// the surviving value.
const (
	MergeStrategyTarget     = "target"
	MergeStrategySource     = "source"
	MergeStrategyMostRecent = "mostRecent"
)

// Duplicate group reasons.
const (
	DuplicateReasonNameCity = "NAME_CITY"
	DuplicateReasonCNPJ     = "CNPJ"
)

// DuplicateGroupResponse is computed on demand for the merge UI and never
// persisted. The first store in Stores is the suggested merge target (the
// most recently updated member).
type DuplicateGroupResponse struct {
	ID                string           `json:"id"`
	Reason            string           `json:"reason"`
	Confidence        float64          `json:"confidence"`
	SuggestedTargetID int64            `json:"suggested_target_id"`
	Stores            []*StoreResponse `json:"stores"`
}

// Target and source presence is checked by the merge service itself, which
// answers with the dedicated merge errors instead of a generic validation one.
type MergeRequest struct {
	TargetID  int64   `json:"target_id"`
	SourceIDs []int64 `json:"source_ids" validate:"nodupes"`
	Strategy  string  `json:"strategy" validate:"required,oneof=target source mostRecent"`
}

type MergeResponse struct {
	Target   *StoreResponse `json:"target"`
	Absorbed []int64        `json:"absorbed"`
}
