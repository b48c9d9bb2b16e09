package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LineBehavior distinguishes weight-based ticket lines (quantity in kg)
// from unit-count lines (quantity in pieces).
type LineBehavior int

const (
	LineBehaviorWeight LineBehavior = 0
	LineBehaviorUnit   LineBehavior = 1
)

func (b LineBehavior) String() string {
	if b == LineBehaviorUnit {
		return "Unit"
	}
	return "Weight"
}

func (b LineBehavior) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *LineBehavior) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*b = LineBehavior(i)
		return nil
	}
	if str == "Unit" {
		*b = LineBehaviorUnit
	} else {
		*b = LineBehaviorWeight
	}
	return nil
}

func (b LineBehavior) Value() (driver.Value, error) {
	return int64(b), nil
}

func (b *LineBehavior) Scan(value interface{}) error {
	if value == nil {
		*b = LineBehaviorWeight
		return nil
	}
	switch v := value.(type) {
	case int64:
		*b = LineBehavior(v)
	case int:
		*b = LineBehavior(v)
	}
	return nil
}
