package envopt

import "errors"

// Getter represents a function that retrieves a value and possibly returns an error
type Getter[T any] func() (T, error)

// Setter represents a function that sets a value and possibly returns an error
type Setter func() error

// Set creates a setter which stores the value from the getter in target.
// target is left untouched if the getter fails.
func Set[T any](target *T, g Getter[T]) Setter {
	return func() error {
		val, err := g()
		if err != nil {
			return err
		}
		*target = val
		return nil
	}
}

// SetOptional creates a setter which stores the value in target only if the variable is present.
func SetOptional[T any](target *T, src Source, name string, parse Parser[T]) Setter {
	return func() error {
		val, found, err := OptionalFrom(src, name, parse)
		if err != nil {
			return err
		}
		if found {
			*target = val
		}
		return nil
	}
}

// Required is a Getter over RequireFrom.
func Required[T any](src Source, name string, parse Parser[T]) Getter[T] {
	return func() (T, error) {
		return RequireFrom(src, name, parse)
	}
}

// Defaulted is a Getter over WithDefaultFrom.
func Defaulted[T any](src Source, name string, parse Parser[T], def T) Getter[T] {
	return func() (T, error) {
		return WithDefaultFrom(src, name, parse, def)
	}
}

// Supply executes setters in order.
// Every setter runs; all failures are returned joined together.
func Supply(setters ...Setter) error {
	var errs []error
	for _, s := range setters {
		if err := s(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
