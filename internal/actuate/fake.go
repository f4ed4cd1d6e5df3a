package actuate

// FakeDrive records actuation side effects for test assertions. It mirrors
// the real drive's idempotence: Arms and Releases count effective state
// changes, EngageCalls and DisengageCalls count every invocation.
type FakeDrive struct {
	EngageCalls    int
	DisengageCalls int
	Arms           int
	Releases       int
	StirSpeeds     []int
	Engaged        bool
	Closed         bool

	// EngageError / DisengageError / StirError, if set, are returned by
	// the corresponding method before any state change.
	EngageError    error
	DisengageError error
	StirError      error
}

// NewFakeDrive creates a FakeDrive in the released state.
func NewFakeDrive() *FakeDrive {
	return &FakeDrive{}
}

// Engage arms the drive if it is not already armed.
func (f *FakeDrive) Engage() error {
	f.EngageCalls++
	if f.EngageError != nil {
		return f.EngageError
	}
	if !f.Engaged {
		f.Engaged = true
		f.Arms++
	}
	return nil
}

// Disengage releases the drive if it is armed.
func (f *FakeDrive) Disengage() error {
	f.DisengageCalls++
	if f.DisengageError != nil {
		return f.DisengageError
	}
	if f.Engaged {
		f.Engaged = false
		f.Releases++
	}
	return nil
}

// StartStir records the requested stir speed.
func (f *FakeDrive) StartStir(speed int) error {
	if f.StirError != nil {
		return f.StirError
	}
	f.StirSpeeds = append(f.StirSpeeds, speed)
	return nil
}

// Close marks the drive as closed.
func (f *FakeDrive) Close() error {
	f.Closed = true
	return nil
}

// Reset clears all recorded state.
func (f *FakeDrive) Reset() {
	*f = FakeDrive{}
}
