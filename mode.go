package envopt

type modeKind int

const (
	modeOptional modeKind = iota
	modeRequired
	modeDefault
)

// Mode defines the behavior of Get when the variable is absent.
// The zero Mode is AsOptional.
type Mode[T any] struct {
	kind modeKind
	def  T
}

// AsOptional makes Get report absence without an error.
func AsOptional[T any]() Mode[T] {
	return Mode[T]{kind: modeOptional}
}

// AsRequired makes Get fail with ErrNotPresent.
func AsRequired[T any]() Mode[T] {
	return Mode[T]{kind: modeRequired}
}

// OrDefault makes Get return def.
func OrDefault[T any](def T) Mode[T] {
	return Mode[T]{kind: modeDefault, def: def}
}

// Get reads name from DefaultSource, using mode to decide what an absent variable means.
// The boolean result is false only when mode is AsOptional and the variable is absent.
func Get[T any](name string, mode Mode[T], parse Parser[T]) (T, bool, error) {
	return GetFrom(DefaultSource, name, mode, parse)
}

// GetFrom is Get over an explicit source.
func GetFrom[T any](src Source, name string, mode Mode[T], parse Parser[T]) (T, bool, error) {
	switch mode.kind {
	case modeRequired:
		v, err := RequireFrom(src, name, parse)
		return v, err == nil, err
	case modeDefault:
		v, err := WithDefaultFrom(src, name, parse, mode.def)
		return v, err == nil, err
	default:
		return OptionalFrom(src, name, parse)
	}
}
