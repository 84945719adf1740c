package dedupe

// defaultMaxSize bounds the dedupe window; a session upload is far smaller
// than this, so re-submissions within a run are always caught.
const defaultMaxSize = 65536

// Option applies a configuration option to the Deduper.
type Option func(*ringDeduper)

// WithMaxSize sets how many IDs are remembered before the oldest is
// evicted. Zero or negative disables eviction.
func WithMaxSize(n int) Option {
	return func(d *ringDeduper) {
		d.maxSize = n
	}
}
