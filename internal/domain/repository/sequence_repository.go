package repository

import "context"

// Counter names used by the consolidation engine. Document id and number
// are independent sequences.
const (
	SequenceDocumentID     = "document_id"
	SequenceDocumentNumber = "document_number"
)

// SequenceRepository allocates strictly increasing integers. Next must be
// called inside the transaction that consumes the value: two concurrent
// callers serialize on the counter row, and a rolled-back caller releases
// its number for reuse.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
