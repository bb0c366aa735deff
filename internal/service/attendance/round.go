package attendance

import "github.com/shopspring/decimal"

// roundHours keeps two decimals, the precision hours are stored at.
func roundHours(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// roundRate keeps one decimal, the precision rates are reported at.
func roundRate(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// percent returns num/den*100 rounded to one decimal, or 0 when den is 0.
func percent(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
