package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TicketStatus represents the lifecycle status of a scale ticket.
//
// Status codes come from the scale firmware and are sparse on purpose:
// 2 and 3 are legacy document-stage substates that behave exactly like
// Processed and are normalized away on read.
type TicketStatus int

const (
	TicketStatusFree           TicketStatus = 0
	TicketStatusProcessed      TicketStatus = 1
	TicketStatusDocumentDraft  TicketStatus = 2
	TicketStatusDocumentIssued TicketStatus = 3
	TicketStatusExpired        TicketStatus = 4
	TicketStatusTaskReserved   TicketStatus = 10
)

// Normalize collapses the legacy document-stage substates into Processed.
func (s TicketStatus) Normalize() TicketStatus {
	if s == TicketStatusDocumentDraft || s == TicketStatusDocumentIssued {
		return TicketStatusProcessed
	}
	return s
}

// ConsumableStatuses are the states a ticket may be in when it is pulled
// into a document. Used by guarded status updates so a concurrent second
// consolidation can never consume the same ticket. Expired tickets remain
// consumable: expiry is a display attribute, not a lock.
func ConsumableStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusFree, TicketStatusTaskReserved, TicketStatusExpired}
}

// ProcessedStatuses are the states that count as "consumed by a document",
// including the legacy substates.
func ProcessedStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusProcessed, TicketStatusDocumentDraft, TicketStatusDocumentIssued}
}

// CanTransition reports whether the status change from s to target is
// permitted. Expiry is driven by an external sweep and is allowed from any
// state; every other edge follows the consolidation/reversal lifecycle.
func (s TicketStatus) CanTransition(target TicketStatus) bool {
	if target == TicketStatusExpired {
		return true
	}
	switch s.Normalize() {
	case TicketStatusFree:
		return target == TicketStatusProcessed || target == TicketStatusTaskReserved
	case TicketStatusTaskReserved:
		return target == TicketStatusProcessed
	case TicketStatusProcessed:
		return target == TicketStatusFree || target == TicketStatusTaskReserved
	case TicketStatusExpired:
		// Expired tickets can still be consolidated; expiry is a display
		// attribute, not a lock.
		return target == TicketStatusProcessed
	}
	return false
}

func (s TicketStatus) String() string {
	switch s.Normalize() {
	case TicketStatusFree:
		return "Free"
	case TicketStatusProcessed:
		return "Processed"
	case TicketStatusExpired:
		return "Expired"
	case TicketStatusTaskReserved:
		return "TaskReserved"
	}
	return "Unknown"
}

func (s TicketStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TicketStatus(i)
		return nil
	}
	switch str {
	case "Free":
		*s = TicketStatusFree
	case "Processed":
		*s = TicketStatusProcessed
	case "Expired":
		*s = TicketStatusExpired
	case "TaskReserved":
		*s = TicketStatusTaskReserved
	}
	return nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TicketStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TicketStatusFree
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TicketStatus(v)
	case int:
		*s = TicketStatus(v)
	}
	return nil
}
