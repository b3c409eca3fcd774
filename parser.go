package envopt

import (
	"encoding"
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Parser converts a raw variable value into T.
// Any func(string) (T, error) fits, strconv.Atoi included.
type Parser[T any] func(string) (T, error)

// String returns the raw value unchanged.
func String(s string) (string, error) {
	return s, nil
}

// Int parses a base 10 int.
func Int(s string) (int, error) {
	return strconv.Atoi(s)
}

// Int64 parses a base 10 int64.
func Int64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// Uint parses a base 10 uint.
func Uint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	return uint(v), err
}

// Uint64 parses a base 10 uint64.
func Uint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// Float64 parses a float64.
func Float64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Bool accepts the values strconv.ParseBool accepts.
func Bool(s string) (bool, error) {
	return strconv.ParseBool(s)
}

// Duration parses values such as "300ms" or "1h30m".
func Duration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

// URL parses an absolute URL or an absolute path.
func URL(s string) (*url.URL, error) {
	return url.ParseRequestURI(s)
}

// Addr parses an IPv4 or IPv6 address.
func Addr(s string) (netip.Addr, error) {
	return netip.ParseAddr(s)
}

// Time returns a Parser which parses values in the given layout.
func Time(layout string) Parser[time.Time] {
	return func(s string) (time.Time, error) {
		return time.Parse(layout, s)
	}
}

// Slice returns a Parser which splits the value by sep and parses every item with elem.
// An empty value yields an empty slice.
func Slice[T any](sep string, elem Parser[T]) Parser[[]T] {
	return func(s string) ([]T, error) {
		if s == "" {
			return []T{}, nil
		}
		items := strings.Split(s, sep)
		result := make([]T, len(items))
		for i, item := range items {
			v, err := elem(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			result[i] = v
		}
		return result, nil
	}
}

// OneOf returns a Parser which accepts only the allowed values.
func OneOf[T comparable](parse Parser[T], allowed ...T) Parser[T] {
	return func(s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			return v, err
		}
		for _, a := range allowed {
			if v == a {
				return v, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("must be one of %v; got %v", allowed, v)
	}
}

// Text returns a Parser for any type whose pointer implements encoding.TextUnmarshaler.
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}]() Parser[T] {
	return func(s string) (T, error) {
		var v T
		if err := PT(&v).UnmarshalText([]byte(s)); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}
