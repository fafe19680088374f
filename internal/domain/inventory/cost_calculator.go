package inventory

import "github.com/shopspring/decimal"

// WeightedRate tarifa promedio ponderada del bien tras una entrada al almacén.
// NuevaTarifa = ((CantActual * TarifaActual) + (CantEntrada * TarifaEntrada)) / (CantActual + CantEntrada)
// Con existencias negativas o nulas la tarifa nueva es la de la entrada.
func WeightedRate(stockQty, stockRate, inQty, inRate decimal.Decimal) decimal.Decimal {
	if stockQty.LessThanOrEqual(decimal.Zero) {
		return inRate
	}
	sum := stockQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockQty.Mul(stockRate).Add(inQty.Mul(inRate))
	return num.Div(sum).Round(4)
}
