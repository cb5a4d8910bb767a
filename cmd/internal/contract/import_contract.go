package contract

// RowIssue explains why one spreadsheet line was skipped. Row is 1-based and
// counts data lines, not the header.
type RowIssue struct {
	Row    int    `json:"row"`
	Store  string `json:"store,omitempty"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one import run. Skipped rows never abort the batch;
// they are reported here with a human-readable reason each.
type ImportReport struct {
	Total   int         `json:"total"`
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Skipped int         `json:"skipped"`
	Issues  []*RowIssue `json:"issues,omitempty"`
}
