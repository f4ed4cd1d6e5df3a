package adc

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// MCP3008 reads the 10-bit ADC over SPI.
type MCP3008 struct {
	port spi.PortCloser
	conn spi.Conn
}

// NewMCP3008 opens the named SPI port ("" selects the first available bus)
// and connects at the chip's 5 V clock rating.
func NewMCP3008(portName string) (*MCP3008, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}

	conn, err := port.Connect(1350*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect mcp3008: %w", err)
	}

	return &MCP3008{port: port, conn: conn}, nil
}

// Read samples a single-ended channel (0..7).
func (m *MCP3008) Read(channel int) (int, error) {
	if channel < 0 || channel > 7 {
		return 0, fmt.Errorf("mcp3008: channel %d out of range", channel)
	}

	// Start bit, then single-ended mode + channel in the top nibble.
	tx := []byte{0x01, byte(0x80 | channel<<4), 0x00}
	rx := make([]byte, 3)
	if err := m.conn.Tx(tx, rx); err != nil {
		return 0, fmt.Errorf("mcp3008: read channel %d: %w", channel, err)
	}

	return int(rx[1]&0x03)<<8 | int(rx[2]), nil
}

// Close releases the SPI port.
func (m *MCP3008) Close() error {
	return m.port.Close()
}
