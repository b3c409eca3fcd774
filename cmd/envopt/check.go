package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/velmie/x/envopt"
)

type probeMode int

const (
	modeRequire probeMode = iota
	modeOptional
	modeDefault
)

// probe is a single variable to check, written as NAME:TYPE or NAME:TYPE=DEFAULT.
type probe struct {
	Name    string
	Type    string
	Mode    probeMode
	Default string
}

type reader func(src envopt.Source, p probe) (value any, found bool, err error)

var readers = map[string]reader{
	"string":   typed(envopt.String),
	"int":      typed(envopt.Int),
	"int64":    typed(envopt.Int64),
	"uint":     typed(envopt.Uint),
	"float":    typed(envopt.Float64),
	"bool":     typed(envopt.Bool),
	"duration": typed(envopt.Duration),
	"url":      typed(envopt.URL),
	"addr":     typed(envopt.Addr),
}

func typed[T any](parse envopt.Parser[T]) reader {
	return func(src envopt.Source, p probe) (any, bool, error) {
		mode := envopt.AsRequired[T]()
		switch p.Mode {
		case modeOptional:
			mode = envopt.AsOptional[T]()
		case modeDefault:
			def, err := parse(p.Default)
			if err != nil {
				return nil, false, fmt.Errorf("default for %s: %w", p.Name, err)
			}
			mode = envopt.OrDefault(def)
		}
		v, found, err := envopt.GetFrom(src, p.Name, mode, parse)
		return v, found, err
	}
}

func parseProbe(arg string, mode probeMode) (probe, error) {
	p := probe{Mode: mode}

	decl := arg
	if mode == modeDefault {
		var ok bool
		decl, p.Default, ok = strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("%q: expected NAME:TYPE=DEFAULT", arg)
		}
	}

	name, typ, ok := strings.Cut(decl, ":")
	if !ok || name == "" {
		return p, fmt.Errorf("%q: expected NAME:TYPE", arg)
	}
	if _, known := readers[typ]; !known {
		return p, fmt.Errorf("%q: unknown type %q, expected one of %s", arg, typ, strings.Join(typeNames(), ", "))
	}
	p.Name, p.Type = name, typ
	return p, nil
}

func typeNames() []string {
	names := make([]string, 0, len(readers))
	for name := range readers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type checkFlags struct {
	optional  []string
	defaults  []string
	overrides []string
	prefix    string
}

func newCheckCmd(a *app) *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [flags] NAME:TYPE ...",
		Short: "Read variables and report their typed values",
		Long: "Reads every listed variable and reports the parsed value.\n" +
			"Positional arguments are required; use --optional and --default for the other modes.\n" +
			"Types: " + strings.Join(typeNames(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			probes, err := f.probes(args)
			if err != nil {
				return err
			}
			src, err := f.source()
			if err != nil {
				return err
			}
			return a.check(cmd.OutOrStdout(), src, probes)
		},
	}

	cmd.Flags().StringArrayVar(&f.optional, "optional", nil, "optional variable as NAME:TYPE (repeatable)")
	cmd.Flags().StringArrayVar(&f.defaults, "default", nil, "variable with a default as NAME:TYPE=DEFAULT (repeatable)")
	cmd.Flags().StringArrayVar(&f.overrides, "set", nil, "override as KEY=VALUE, consulted before the environment (repeatable)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "prefix prepended to every NAME")

	return cmd
}

func (f *checkFlags) probes(required []string) ([]probe, error) {
	var (
		probes []probe
		errs   []error
	)
	add := func(args []string, mode probeMode) {
		for _, arg := range args {
			p, err := parseProbe(arg, mode)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			probes = append(probes, p)
		}
	}
	add(required, modeRequire)
	add(f.optional, modeOptional)
	add(f.defaults, modeDefault)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(probes) == 0 {
		return nil, errors.New("no variables to check")
	}
	return probes, nil
}

func (f *checkFlags) source() (envopt.Source, error) {
	src := envopt.DefaultSource
	if len(f.overrides) > 0 {
		data := make(map[string]string, len(f.overrides))
		for _, kv := range f.overrides {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				return nil, fmt.Errorf("--set %q: expected KEY=VALUE", kv)
			}
			data[k] = v
		}
		src = envopt.Chain(envopt.NewMapSource(data, "flags"), src)
	}
	if f.prefix != "" {
		src = envopt.Prefixed(src, f.prefix)
	}
	return src, nil
}

// check prints one line per probe and fails if any probe failed.
func (a *app) check(w io.Writer, src envopt.Source, probes []probe) error {
	failed := 0
	for _, p := range probes {
		value, found, err := readers[p.Type](src, p)
		switch {
		case err != nil:
			failed++
			a.log.Error().Err(err).Str("variable", p.Name).Str("type", p.Type).Msg("check failed")
			fmt.Fprintf(w, "%s: %v\n", p.Name, err)
		case !found:
			a.log.Debug().Str("variable", p.Name).Msg("optional variable is absent")
			fmt.Fprintf(w, "%s: absent\n", p.Name)
		default:
			a.log.Debug().Str("variable", p.Name).Str("type", p.Type).Msg("check passed")
			fmt.Fprintf(w, "%s=%v\n", p.Name, value)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d variables failed", failed, len(probes))
	}
	return nil
}
