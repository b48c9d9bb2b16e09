package enum

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// VATClass is the fixed tax-rate enumeration carried by articles and
// manual lines. Any class outside the known set maps to a zero rate.
type VATClass int

const (
	VATClassReduced4   VATClass = 1
	VATClassReduced10  VATClass = 2
	VATClassStandard22 VATClass = 3
)

var (
	rate4  = decimal.New(4, -2)  // 0.04
	rate10 = decimal.New(10, -2) // 0.10
	rate22 = decimal.New(22, -2) // 0.22
)

// Rate returns the VAT rate as a fraction (0.22 for the 22% class).
func (v VATClass) Rate() decimal.Decimal {
	switch v {
	case VATClassReduced4:
		return rate4
	case VATClassReduced10:
		return rate10
	case VATClassStandard22:
		return rate22
	}
	return decimal.Zero
}

// RatePercent returns the VAT rate as a percentage (22 for the 22% class).
func (v VATClass) RatePercent() decimal.Decimal {
	return v.Rate().Mul(decimal.NewFromInt(100))
}

func (v VATClass) String() string {
	switch v {
	case VATClassReduced4:
		return "4%"
	case VATClassReduced10:
		return "10%"
	case VATClassStandard22:
		return "22%"
	}
	return "0%"
}

func (v VATClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(v))
}

func (v *VATClass) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return err
	}
	*v = VATClass(i)
	return nil
}

func (v VATClass) Value() (driver.Value, error) {
	return int64(v), nil
}

func (v *VATClass) Scan(value interface{}) error {
	if value == nil {
		*v = 0
		return nil
	}
	switch val := value.(type) {
	case int64:
		*v = VATClass(val)
	case int:
		*v = VATClass(val)
	}
	return nil
}
