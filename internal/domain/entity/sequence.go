package entity

// Sequence is a named monotonic counter. The allocator locks the row and
// advances it inside the same transaction that consumes the value, so a
// rolled-back creation rolls the number back with it.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:50"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}
