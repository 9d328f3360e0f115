package stego

// ProgressInterval is the default number of slots between progress callbacks.
const ProgressInterval = 1 << 16

// ProgressFunc receives the number of processed slots out of total.
type ProgressFunc func(done, total int)

// Option configures Embed and Extract.
type Option func(*options)

type options struct {
	progress ProgressFunc
	interval int
}

// WithProgress registers a callback invoked periodically and once on completion.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressInterval overrides the number of slots between callbacks.
func WithProgressInterval(slots int) Option {
	return func(o *options) {
		if slots > 0 {
			o.interval = slots
		}
	}
}

func newOptions(opts []Option) options {
	o := options{interval: ProgressInterval}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// tick reports progress every interval slots and at the end.
func (o options) tick(done, total int) {
	if o.progress == nil {
		return
	}

	if done == total || done%o.interval == 0 {
		o.progress(done, total)
	}
}
