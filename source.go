package envopt

import "os"

//go:generate go run go.uber.org/mock/mockgen@v0.3.0 -source source.go -destination ./mock/source.go -package mock

// Source is anything that can answer a variable lookup by name.
type Source interface {
	// Lookup retrieves a value by name.
	// found is false when the variable is absent; an empty value with found set to true is present.
	// err is reserved for failures of the source itself.
	Lookup(name string) (value string, found bool, err error)

	// Name returns a human-readable name of the source for diagnostics.
	Name() string
}

// EnvSource reads the host process environment.
type EnvSource struct{}

// Lookup retrieves an environment variable by name.
func (EnvSource) Lookup(name string) (string, bool, error) {
	val, found := os.LookupEnv(name)
	return val, found, nil
}

// Name returns the source name.
func (EnvSource) Name() string {
	return "Environment"
}

// MapSource serves variables from an in-memory map.
// Useful for testing or for overrides supplied on the command line.
type MapSource struct {
	SourceName string
	Data       map[string]string
}

// NewMapSource creates a new MapSource. An empty name defaults to "Map".
func NewMapSource(data map[string]string, name string) *MapSource {
	if name == "" {
		name = "Map"
	}
	return &MapSource{
		SourceName: name,
		Data:       data,
	}
}

func (s *MapSource) Lookup(name string) (string, bool, error) {
	val, found := s.Data[name]
	return val, found, nil
}

func (s *MapSource) Name() string {
	return s.SourceName
}

type prefixedSource struct {
	prefix string
	src    Source
}

// Prefixed returns a Source which prepends prefix to every name before delegating to src.
func Prefixed(src Source, prefix string) Source {
	return &prefixedSource{prefix: prefix, src: src}
}

func (p *prefixedSource) Lookup(name string) (string, bool, error) {
	return p.src.Lookup(p.prefix + name)
}

// Qualify returns the name as it is looked up in the underlying source.
func (p *prefixedSource) Qualify(name string) string {
	return qualify(p.src, p.prefix+name)
}

func (p *prefixedSource) Name() string {
	return p.src.Name() + "[" + p.prefix + "*]"
}

// qualifier is implemented by sources which rewrite names before looking them up.
type qualifier interface {
	Qualify(name string) string
}

func qualify(src Source, name string) string {
	if q, ok := src.(qualifier); ok {
		return q.Qualify(name)
	}
	return name
}
