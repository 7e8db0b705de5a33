package job

import (
	"time"

	"podowl/internal/core/domain/model/kernel"
)

// Factory creates new jobs. Its defaults are an explicit Details value
// supplied by configuration; there are no package-level defaults.
//
// Example:
//
//	details, _ := job.PlaceholderDetails(job.PhoneOverrides{Courier: "+61400000000"})
//	factory, _ := job.NewFactory(details)
//	j, err := factory.NewJob()
type Factory struct {
	defaults Details
	now      func() time.Time
	nextCode func() Code
	nextID   func() kernel.UUID
}

// FactoryOption customizes a Factory, mostly for tests.
type FactoryOption func(*Factory)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

// WithCodeSource replaces NewRandomCode.
func WithCodeSource(next func() Code) FactoryOption {
	return func(f *Factory) {
		f.nextCode = next
	}
}

// WithIDSource replaces kernel.NewUUID.
func WithIDSource(next func() kernel.UUID) FactoryOption {
	return func(f *Factory) {
		f.nextID = next
	}
}

// NewFactory validates the defaults once so that NewJob cannot fail on them later.
func NewFactory(defaults Details, opts ...FactoryOption) (Factory, error) {
	f := Factory{
		defaults: defaults,
		now:      time.Now,
		nextCode: NewRandomCode,
		nextID:   kernel.NewUUID,
	}
	for _, opt := range opts {
		opt(&f)
	}

	var probe Job
	if err := probe.setDetails(defaults); err != nil {
		return Factory{}, err
	}

	return f, nil
}

// Defaults returns a copy of the configured details.
func (f Factory) Defaults() Details {
	d := f.defaults
	d.Items = append([]Item(nil), f.defaults.Items...)
	return d
}

// NewJob creates a Waiting job from the factory defaults.
func (f Factory) NewJob() (*Job, error) {
	return f.Create(f.defaults)
}

// Create creates a Waiting job from details with a fresh id, a random code
// and created == updated == now.
func (f Factory) Create(details Details) (*Job, error) {
	// Microsecond precision survives a round trip through PostgreSQL timestamps.
	now := f.now().UTC().Truncate(time.Microsecond)
	return newJob(f.nextID(), now, details, f.nextCode())
}
