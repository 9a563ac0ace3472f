package memo

type config struct {
	capacity int
}

// Option applies a configuration option to an in-memory store.
type Option func(*config)

// WithCapacity presizes the store for n entries. It is not a limit.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}
