package logic

// ADC and voltage-divider constants. The rails are sampled through a
// resistor divider so they fit the ADC reference range; the divider ratio
// is (R1+R2)/R2 for the populated board.
const (
	adcFullScale = 1023
	adcRefVolts  = 5.0
	dividerRatio = 3.0
)

// Rail health thresholds, inclusive: a rail exactly at its minimum passes.
const (
	BatteryMinVolts  = 5.5
	FuelCellMinVolts = 7.0
)

// RailVoltage converts a raw ADC sample to the physical rail voltage.
func RailVoltage(raw int) float64 {
	return float64(raw) * (adcRefVolts / adcFullScale) * dividerRatio
}

// CheckRail reports whether a rail sample meets its minimum voltage.
// Advisory only: the result drives an indicator output and a diagnostic,
// never run permission.
func CheckRail(raw int, minVolts float64) bool {
	return RailVoltage(raw) >= minVolts
}
