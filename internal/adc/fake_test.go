package adc

import (
	"errors"
	"testing"
)

func TestFakeReaderPerChannel(t *testing.T) {
	f := NewFakeReader(map[int][]int{
		ChannelBattery: {700},
		ChannelLight:   {1000, 990, 750},
	})

	// Channels are independent.
	if v, err := f.Read(ChannelBattery); err != nil || v != 700 {
		t.Errorf("battery: got (%d, %v), want (700, nil)", v, err)
	}

	want := []int{1000, 990, 750, 750} // last value repeats
	for i, w := range want {
		v, err := f.Read(ChannelLight)
		if err != nil {
			t.Fatalf("light read %d: unexpected error: %v", i, err)
		}
		if v != w {
			t.Errorf("light read %d: got %d, want %d", i, v, w)
		}
	}

	// Battery script unaffected by light reads.
	if v, _ := f.Read(ChannelBattery); v != 700 {
		t.Errorf("battery repeat: got %d, want 700", v)
	}
}

func TestFakeReaderUnconfiguredChannel(t *testing.T) {
	f := NewFakeReader(map[int][]int{ChannelLight: {1000}})
	if _, err := f.Read(ChannelFuelCell); err == nil {
		t.Error("expected error for unconfigured channel")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader(map[int][]int{ChannelLight: {1000}})
	f.ReadError = errors.New("simulated error")
	if _, err := f.Read(ChannelLight); err == nil {
		t.Error("expected injected error to be returned")
	}
}

func TestFakeReaderReset(t *testing.T) {
	f := NewFakeReader(map[int][]int{ChannelLight: {10, 20}})
	f.Read(ChannelLight)
	f.Reset()
	if v, _ := f.Read(ChannelLight); v != 10 {
		t.Errorf("after reset: got %d, want 10", v)
	}
}
