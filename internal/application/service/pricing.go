package service

import (
	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Unit prices keep 8 fractional digits so that per-line rounding error does
// not compound across a document; final line amounts round to 2.
const (
	unitPricePrecision = 8
	amountPrecision    = 2
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// LineAmounts is the priced result for one canonical line.
type LineAmounts struct {
	UnitPrice   decimal.Decimal // VAT-exclusive
	VATRate     decimal.Decimal // percent
	DiscountPct decimal.Decimal
	NetAmount   decimal.Decimal
	VATAmount   decimal.Decimal
	Total       decimal.Decimal
}

// ValidateDiscount checks a discount percentage against the [0, 100] range.
func ValidateDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return apperror.NewBadRequestError("discount percentage must be between 0 and 100")
	}
	return nil
}

// PriceLine computes the VAT-exclusive amounts for one line. The discount
// factor multiplies subtotal and VAT alike, so the pre/post-VAT ratio is
// preserved exactly.
func PriceLine(line CanonicalLine, discountPct decimal.Decimal) (LineAmounts, error) {
	if err := ValidateDiscount(discountPct); err != nil {
		return LineAmounts{}, err
	}

	rate := line.VATClass.Rate()

	unitNet := line.UnitPrice
	if line.PriceIncludesVAT {
		unitNet = line.UnitPrice.Div(one.Add(rate))
	}
	unitNet = unitNet.Round(unitPricePrecision)

	subtotal := unitNet.Mul(line.Quantity)
	vat := subtotal.Mul(rate)

	if discountPct.IsPositive() {
		factor := one.Sub(discountPct.Div(hundred))
		subtotal = subtotal.Mul(factor)
		vat = vat.Mul(factor)
	}

	net := subtotal.Round(amountPrecision)
	vatAmount := vat.Round(amountPrecision)

	return LineAmounts{
		UnitPrice:   unitNet,
		VATRate:     line.VATClass.RatePercent(),
		DiscountPct: discountPct,
		NetAmount:   net,
		VATAmount:   vatAmount,
		Total:       net.Add(vatAmount),
	}, nil
}

// Totals are document-level sums of the persisted line amounts.
type Totals struct {
	Net   decimal.Decimal `json:"net_total"`
	VAT   decimal.Decimal `json:"vat_total"`
	Total decimal.Decimal `json:"total"`
}

// SumLines recomputes document totals from stored line amounts. Summing the
// same lines again at any later time reproduces the stored totals exactly,
// so totals are never kept as a divergent running accumulator.
func SumLines(lines []entity.DocumentLine) Totals {
	net := decimal.Zero
	vat := decimal.Zero
	for _, l := range lines {
		net = net.Add(l.NetAmount)
		vat = vat.Add(l.VATAmount)
	}
	return Totals{Net: net, VAT: vat, Total: net.Add(vat)}
}
