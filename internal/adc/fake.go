package adc

import "fmt"

// FakeReader is a test double returning scripted samples per channel.
type FakeReader struct {
	// Samples maps channel -> scripted values. Each Read on a channel
	// consumes the next value; when exhausted, the last value repeats.
	Samples map[int][]int

	// index tracks current position per channel
	index map[int]int

	// ReadError, if set, will be returned by Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeReader creates a FakeReader with the given per-channel scripts.
func NewFakeReader(samples map[int][]int) *FakeReader {
	return &FakeReader{
		Samples: samples,
		index:   make(map[int]int),
	}
}

// Read returns the next scripted sample for the channel.
func (f *FakeReader) Read(channel int) (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	script := f.Samples[channel]
	if len(script) == 0 {
		return 0, fmt.Errorf("no samples configured for channel %d", channel)
	}
	v := script[f.index[channel]]
	if f.index[channel] < len(script)-1 {
		f.index[channel]++
	}
	return v, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds all channel scripts.
func (f *FakeReader) Reset() {
	f.index = make(map[int]int)
	f.ReadError = nil
	f.Closed = false
}
