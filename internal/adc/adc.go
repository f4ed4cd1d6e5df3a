// Package adc provides the car's analog sampling with hardware
// abstraction. The real implementation talks to an MCP3008 on the SPI bus;
// the fake returns scripted samples per channel.
package adc

// Reader samples one analog channel. Values are 10-bit (0..1023).
type Reader interface {
	Read(channel int) (int, error)
	Close() error
}

// Channel assignments on the MCP3008.
const (
	ChannelBattery  = 0 // battery rail through the divider
	ChannelFuelCell = 1 // fuel-cell rail through the divider
	ChannelLight    = 2 // photoresistor bridge
)
