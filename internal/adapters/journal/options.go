package journal

// Option applies a configuration option to the InMemoryJournal.
type Option func(*InMemoryJournal)

// WithCapacity sets the maximum number of retained events.
func WithCapacity(n int) Option {
	return func(j *InMemoryJournal) {
		if n > 0 {
			j.capacity = n
		}
	}
}
