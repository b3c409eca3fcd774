package envopt

import (
	"fmt"
	"strings"
)

// ErrorHandler decides what a ChainSource does when one of its sources fails.
// It returns whether to continue with the next source and, if not, the error to report.
type ErrorHandler func(err error, sourceName string) (bool, error)

// ContinueOnError ignores the failing source and moves on to the next one
func ContinueOnError(error, string) (bool, error) {
	return true, nil
}

// BreakOnError stops on the first failing source
func BreakOnError(err error, sourceName string) (bool, error) {
	return false, fmt.Errorf("source %s: %w", sourceName, err)
}

// ChainSource queries sources in order and returns the first one that has the variable.
type ChainSource struct {
	sources      []Source
	errorHandler ErrorHandler
}

// Chain creates a ChainSource over the given sources, highest priority first.
// By default, uses BreakOnError as the error handler.
func Chain(sources ...Source) *ChainSource {
	return &ChainSource{
		sources:      sources,
		errorHandler: BreakOnError,
	}
}

// WithErrorHandler sets a custom error handler and returns the chain for chaining.
func (c *ChainSource) WithErrorHandler(handler ErrorHandler) *ChainSource {
	c.errorHandler = handler
	return c
}

// Append adds a source with the lowest priority.
func (c *ChainSource) Append(src Source) {
	c.sources = append(c.sources, src)
}

// Lookup returns the value from the first source which has the variable.
func (c *ChainSource) Lookup(name string) (string, bool, error) {
	for _, src := range c.sources {
		val, found, err := src.Lookup(name)
		if err != nil {
			if c.errorHandler == nil {
				return "", false, err
			}
			next, handlerErr := c.errorHandler(err, src.Name())
			if !next {
				return "", false, handlerErr
			}
			continue
		}
		if found {
			return val, true, nil
		}
	}
	return "", false, nil
}

func (c *ChainSource) Name() string {
	names := make([]string, len(c.sources))
	for i, src := range c.sources {
		names[i] = src.Name()
	}
	return "Chain(" + strings.Join(names, ", ") + ")"
}
