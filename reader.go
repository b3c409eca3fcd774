package envopt

// DefaultSource is the source used by Require, Optional, WithDefault and Get.
// It reads the process environment.
var DefaultSource Source = EnvSource{}

// Require reads name from DefaultSource and parses it.
// It fails with ErrNotPresent if the variable is absent and with ErrParseFailed if parse rejects it.
func Require[T any](name string, parse Parser[T]) (T, error) {
	return RequireFrom(DefaultSource, name, parse)
}

// Optional reads name from DefaultSource and parses it.
// An absent variable is not an error: the zero value and false are returned.
func Optional[T any](name string, parse Parser[T]) (T, bool, error) {
	return OptionalFrom(DefaultSource, name, parse)
}

// WithDefault reads name from DefaultSource and parses it, returning def if the variable is absent.
// def is returned as is; it never replaces a value that fails to parse.
func WithDefault[T any](name string, parse Parser[T], def T) (T, error) {
	return WithDefaultFrom(DefaultSource, name, parse, def)
}

// RequireFrom is Require over an explicit source.
func RequireFrom[T any](src Source, name string, parse Parser[T]) (T, error) {
	v, found, err := lookup(src, name, parse)
	if err != nil {
		return v, err
	}
	if !found {
		return v, notPresent(qualify(src, name))
	}
	return v, nil
}

// OptionalFrom is Optional over an explicit source.
func OptionalFrom[T any](src Source, name string, parse Parser[T]) (T, bool, error) {
	return lookup(src, name, parse)
}

// WithDefaultFrom is WithDefault over an explicit source.
func WithDefaultFrom[T any](src Source, name string, parse Parser[T], def T) (T, error) {
	v, found, err := lookup(src, name, parse)
	if err != nil {
		return v, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

// lookup reads name from src and, if present, parses it.
// found reports presence; an empty value is present.
// Errors carry the name as the source resolves it, prefix included.
func lookup[T any](src Source, name string, parse Parser[T]) (v T, found bool, err error) {
	raw, found, err := src.Lookup(name)
	if err != nil {
		return v, false, lookupFailed(qualify(src, name), err)
	}
	if !found {
		return v, false, nil
	}
	parsed, err := parse(raw)
	if err != nil {
		return v, true, parseFailed(qualify(src, name), err)
	}
	return parsed, true, nil
}
