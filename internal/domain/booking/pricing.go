package booking

import "math"

// LinePrice is the base price plus the modifiers of the selected options.
// Options without a modifier are ignored.
func (s SelectedService) LinePrice() float64 {
	total := s.Price
	for _, opt := range s.Options {
		if m, ok := s.PricingModifiers[opt]; ok {
			total += m
		}
	}
	return total
}

func CalculateMultiServicePrice(services []SelectedService) float64 {
	total := 0.0
	for _, s := range services {
		total += s.LinePrice()
	}
	return math.Round(total*100) / 100
}
