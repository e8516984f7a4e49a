package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithIDGenerator overrides how fresh competition ids are minted.
// Used by tests that need deterministic ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
