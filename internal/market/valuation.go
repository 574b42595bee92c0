package market

import (
	"fmt"

	"fintrack/internal/models"
)

// LotValuation is the derived value of a single lot at a given market price.
// UnitsBought is carried at full precision; fractional units are normal for
// cryptocurrency lots. Rounding for display happens in the presentation layer.
type LotValuation struct {
	UnitsBought     float64 `json:"units_bought"`
	CurrentValue    float64 `json:"current_value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// InstrumentValuation aggregates all lots of an investment at one shared
// current price.
type InstrumentValuation struct {
	TotalInvested   float64 `json:"totalInvested"`
	TotalUnits      float64 `json:"totalUnits"`
	CurrentPrice    float64 `json:"currentPrice"`
	CurrentValue    float64 `json:"currentValue"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

// ValueLot computes the valuation of one lot against currentPrice.
// A zero price per unit makes the unit count undefined; lot validation
// rejects it at creation time, so hitting it here is an upstream bug and is
// reported as an error rather than producing Inf/NaN.
func ValueLot(lot models.InvestmentLot, currentPrice float64) (LotValuation, error) {
	if lot.PricePerUnit == 0 {
		return LotValuation{}, fmt.Errorf("lot %d has zero price per unit", lot.ID)
	}

	units := lot.AmountInvested / lot.PricePerUnit
	value := units * currentPrice
	gainLoss := value - lot.AmountInvested

	v := LotValuation{
		UnitsBought:  units,
		CurrentValue: value,
		GainLoss:     gainLoss,
	}
	// Guard the percentage so a zero-cost lot reports exactly 0, not NaN.
	if lot.AmountInvested > 0 {
		v.GainLossPercent = gainLoss / lot.AmountInvested * 100
	}
	return v, nil
}

// ValueLots aggregates lots at one shared currentPrice. Total units are the
// sum of per-lot units — not totalInvested / currentPrice — so lots bought at
// different prices contribute their actual unit counts.
func ValueLots(lots []models.InvestmentLot, currentPrice float64) (InstrumentValuation, error) {
	var totalInvested, totalUnits float64
	for _, lot := range lots {
		if lot.PricePerUnit == 0 {
			return InstrumentValuation{}, fmt.Errorf("lot %d has zero price per unit", lot.ID)
		}
		totalInvested += lot.AmountInvested
		totalUnits += lot.AmountInvested / lot.PricePerUnit
	}

	currentValue := totalUnits * currentPrice
	gainLoss := currentValue - totalInvested

	v := InstrumentValuation{
		TotalInvested: totalInvested,
		TotalUnits:    totalUnits,
		CurrentPrice:  currentPrice,
		CurrentValue:  currentValue,
		GainLoss:      gainLoss,
	}
	if totalInvested > 0 {
		v.GainLossPercent = gainLoss / totalInvested * 100
	}
	return v, nil
}
