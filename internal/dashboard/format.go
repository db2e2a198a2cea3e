package dashboard

import (
	"fmt"
	"strings"
)

// DisplayTimeLayout is how the update time is shown on the page
const DisplayTimeLayout = "02/01/2006 15:04"

// decimalComma formats v with places decimals and a comma separator
func decimalComma(v float64, places int) string {
	return strings.Replace(fmt.Sprintf("%.*f", places, v), ".", ",", 1)
}

// BRL formats a currency amount, e.g. "R$ 12,34"
func BRL(v float64, places int) string {
	return "R$ " + decimalComma(v, places)
}

// Percent formats a percentage with 2 places, e.g. "12,34%"
func Percent(v float64) string {
	return decimalComma(v, 2) + "%"
}

// Ratio formats a plain ratio with 2 places, e.g. "0,95"
func Ratio(v float64) string {
	return decimalComma(v, 2)
}
