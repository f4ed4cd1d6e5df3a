package logic

import "fmt"

// Calibrate takes n sequential optical samples and returns their integer
// mean, the calibration baseline for endpoint detection. wait is called
// between consecutive samples so readings are not correlated while the
// sensor settles; it is nil-safe. There is no outlier rejection or
// variance check: a saturated or disconnected sensor yields a wrong
// baseline.
func Calibrate(n int, sample func() (int, error), wait func()) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("calibrate: sample count must be positive, got %d", n)
	}

	sum := 0
	for i := 0; i < n; i++ {
		if i > 0 && wait != nil {
			wait()
		}
		v, err := sample()
		if err != nil {
			return 0, fmt.Errorf("calibrate: sample %d: %w", i, err)
		}
		sum += v
	}
	return sum / n, nil
}
