package logic

import (
	"errors"
	"testing"
)

func TestCalibrateIdenticalSamples(t *testing.T) {
	sample := func() (int, error) { return 612, nil }
	got, err := Calibrate(10, sample, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 612 {
		t.Errorf("baseline: got %d, want exactly 612", got)
	}
}

func TestCalibrateIntegerMean(t *testing.T) {
	samples := []int{1000, 1001, 1001, 1002}
	i := 0
	sample := func() (int, error) {
		v := samples[i]
		i++
		return v, nil
	}
	got, err := Calibrate(len(samples), sample, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4004 / 4 = 1001
	if got != 1001 {
		t.Errorf("baseline: got %d, want 1001", got)
	}
}

func TestCalibrateTruncatesMean(t *testing.T) {
	samples := []int{1, 2}
	i := 0
	sample := func() (int, error) {
		v := samples[i]
		i++
		return v, nil
	}
	got, err := Calibrate(2, sample, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("baseline: got %d, want 1 (integer mean)", got)
	}
}

func TestCalibrateWaitsBetweenSamples(t *testing.T) {
	waits := 0
	sample := func() (int, error) { return 500, nil }
	_, err := Calibrate(10, sample, func() { waits++ })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Inter-sample spacing only: n samples, n-1 waits.
	if waits != 9 {
		t.Errorf("waits: got %d, want 9", waits)
	}
}

func TestCalibrateSampleError(t *testing.T) {
	calls := 0
	sample := func() (int, error) {
		calls++
		if calls == 3 {
			return 0, errors.New("adc fault")
		}
		return 500, nil
	}
	_, err := Calibrate(10, sample, nil)
	if err == nil {
		t.Fatal("expected error from failing sampler")
	}
	if calls != 3 {
		t.Errorf("sampler calls: got %d, want 3 (stop at first failure)", calls)
	}
}

func TestCalibrateInvalidCount(t *testing.T) {
	sample := func() (int, error) { return 500, nil }
	if _, err := Calibrate(0, sample, nil); err == nil {
		t.Error("expected error for n=0")
	}
	if _, err := Calibrate(-1, sample, nil); err == nil {
		t.Error("expected error for negative n")
	}
}
