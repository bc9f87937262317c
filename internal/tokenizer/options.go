package tokenizer

// Options controls token normalization.
type Options struct {
	// Lowercase casefolds every token.
	Lowercase bool `json:"lowercase" toml:"lowercase"`
	// RemovePunctuation strips runes that are not letters or digits.
	RemovePunctuation bool `json:"removePunctuation" toml:"remove_punctuation"`
	// KeepHyphens retains '-' inside tokens when stripping punctuation.
	KeepHyphens bool `json:"keepHyphens" toml:"keep_hyphens"`
	// KeepApostrophes retains '\'' inside tokens when stripping punctuation.
	KeepApostrophes bool `json:"keepApostrophes" toml:"keep_apostrophes"`
}

// DefaultOptions returns options with every flag enabled.
func DefaultOptions() Options {
	return Options{
		Lowercase:         true,
		RemovePunctuation: true,
		KeepHyphens:       true,
		KeepApostrophes:   true,
	}
}

// Option adjusts Options built by NewOptions.
type Option func(*Options)

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLowercase sets Options.Lowercase.
func WithLowercase(v bool) Option { return func(o *Options) { o.Lowercase = v } }

// WithRemovePunctuation sets Options.RemovePunctuation.
func WithRemovePunctuation(v bool) Option { return func(o *Options) { o.RemovePunctuation = v } }

// WithKeepHyphens keeps "-" inside tokens when punctuation is removed.
func WithKeepHyphens(v bool) Option { return func(o *Options) { o.KeepHyphens = v } }

// WithKeepApostrophes keeps "'" inside tokens when punctuation is removed.
func WithKeepApostrophes(v bool) Option { return func(o *Options) { o.KeepApostrophes = v } }
