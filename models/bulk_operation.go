package models

// BulkOperation is the closed set of mutations a bulk request can apply.
// Each variant carries its own typed payload; the coordinator dispatches with
// an exhaustive type switch, so a new operation cannot be added without also
// defining its payload.
type BulkOperation interface {
	// OpName is the wire name of the operation, e.g. "add_tags"
	OpName() string
	// Validate checks the payload before any entry is touched
	Validate() error

	isBulkOperation()
}

// ArchiveOp archives each entry with the given reason
type ArchiveOp struct {
	Reason string
}

func (ArchiveOp) OpName() string   { return "archive" }
func (ArchiveOp) isBulkOperation() {}

// Validate requires a non-empty archive reason
func (op ArchiveOp) Validate() error {
	if op.Reason == "" {
		return NewValidationError("archive operation requires a reason")
	}
	return nil
}

// DeleteOp hard-deletes each entry. Not reversible.
type DeleteOp struct{}

func (DeleteOp) OpName() string   { return "delete" }
func (DeleteOp) isBulkOperation() {}
func (DeleteOp) Validate() error  { return nil }

// UpdateDimensionOp recategorizes each entry under a new dimension
type UpdateDimensionOp struct {
	NewDimension Dimension
}

func (UpdateDimensionOp) OpName() string   { return "update_dimension" }
func (UpdateDimensionOp) isBulkOperation() {}

// Validate requires a recognized dimension
func (op UpdateDimensionOp) Validate() error {
	if !op.NewDimension.IsValid() {
		return NewValidationError("invalid dimension %q", string(op.NewDimension))
	}
	return nil
}

// AddTagsOp assigns the given tags to each entry
type AddTagsOp struct {
	TagIDs []uint
}

func (AddTagsOp) OpName() string   { return "add_tags" }
func (AddTagsOp) isBulkOperation() {}

// Validate requires at least one tag ID
func (op AddTagsOp) Validate() error {
	if len(op.TagIDs) == 0 {
		return NewValidationError("add_tags operation requires at least one tag ID")
	}
	return nil
}

// BulkOperationResult accumulates per-item outcomes of one bulk request.
// It is transient and never persisted.
type BulkOperationResult struct {
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	Errors       []string `json:"errors"`
}
