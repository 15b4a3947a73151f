package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado sobre
// el costo por unidad de un StockLevel cuando entra mercancía con costo propio.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	total := currentQty + inQty
	if total <= 0 {
		return decimal.Zero
	}
	cur := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(decimal.NewFromInt(total))
}
