package services

// MultiMachineCoeff returns the coefficient applied to the hours of
// multiplicative tasks for machines 2..N. The tiers reflect economies of
// repetition: each additional machine costs a decreasing share of the first
// one. The boundaries are policy constants.
//
// Quantities below 2 yield 0 (no extra machines). Zero or negative quantities
// are rejected before reaching this function.
func MultiMachineCoeff(quantity int) float64 {
	switch {
	case quantity <= 1:
		return 0.0
	case quantity == 2:
		return 1.0
	case quantity <= 5:
		return float64(quantity-1) * 0.75
	case quantity <= 25:
		return float64(quantity-1) * 0.35
	default:
		return float64(quantity-1) * 0.15
	}
}
