package odatajson

// DuplicateKeyPolicy controls how repeated keys within one JSON object are
// handled.
type DuplicateKeyPolicy int

const (
	// DuplicateKeysReject fails the decode (duplicate_property or
	// duplicate_json_property). It is the default.
	DuplicateKeysReject DuplicateKeyPolicy = iota
	// DuplicateKeysLastWins keeps the key at its first position with the
	// value of its last occurrence.
	DuplicateKeysLastWins
)

// Options configures a Deserializer.
type Options struct {
	Driver        JSONDriver // nil selects GoJSONDriver
	MaxDepth      int        // 0 = unlimited
	MaxBytes      int64      // 0 = unlimited
	DuplicateKeys DuplicateKeyPolicy
}

// Option mutates Options.
type Option func(*Options)

// WithDriver selects the JSON tokenizer.
func WithDriver(d JSONDriver) Option { return func(o *Options) { o.Driver = d } }

// WithMaxDepth bounds container nesting. Exceeding it fails with max_depth.
func WithMaxDepth(n int) Option { return func(o *Options) { o.MaxDepth = n } }

// WithMaxBytes bounds the input size. Exceeding it fails with truncated.
func WithMaxBytes(n int64) Option { return func(o *Options) { o.MaxBytes = n } }

// WithDuplicateKeys sets the policy for keys repeated within one object.
func WithDuplicateKeys(p DuplicateKeyPolicy) Option { return func(o *Options) { o.DuplicateKeys = p } }

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }
