package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParseProbe(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		mode    probeMode
		want    probe
		wantErr string
	}{
		{
			name: "required",
			arg:  "PORT:int",
			mode: modeRequire,
			want: probe{Name: "PORT", Type: "int", Mode: modeRequire},
		},
		{
			name: "default keeps separators in value",
			arg:  "UPSTREAM:url=http://localhost:8080/?a=b",
			mode: modeDefault,
			want: probe{Name: "UPSTREAM", Type: "url", Mode: modeDefault, Default: "http://localhost:8080/?a=b"},
		},
		{
			name: "empty default",
			arg:  "NAME:string=",
			mode: modeDefault,
			want: probe{Name: "NAME", Type: "string", Mode: modeDefault},
		},
		{name: "missing type", arg: "PORT", mode: modeRequire, wantErr: `"PORT": expected NAME:TYPE`},
		{name: "missing name", arg: ":int", mode: modeOptional, wantErr: `":int": expected NAME:TYPE`},
		{name: "missing default", arg: "PORT:int", mode: modeDefault, wantErr: `"PORT:int": expected NAME:TYPE=DEFAULT`},
		{name: "unknown type", arg: "PORT:port", mode: modeRequire, wantErr: `unknown type "port"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbe(tt.arg, tt.mode)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ENVOPT_CLI_PORT", "9090")
	t.Setenv("ENVOPT_CLI_RATIO", "0.75")

	out, _, err := execute(t, "check",
		"ENVOPT_CLI_PORT:int",
		"--optional", "ENVOPT_CLI_DEBUG:bool",
		"--default", "ENVOPT_CLI_TIMEOUT:duration=5s",
		"--default", "ENVOPT_CLI_RATIO:float=0.1",
	)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"ENVOPT_CLI_PORT=9090",
		"ENVOPT_CLI_DEBUG: absent",
		"ENVOPT_CLI_TIMEOUT=5s",
		"ENVOPT_CLI_RATIO=0.75",
	}, "\n")+"\n", out)
}

func TestCheck_Failures(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ENVOPT_CLI_PORT", "abc")

	out, logs, err := execute(t, "check", "ENVOPT_CLI_PORT:int", "ENVOPT_CLI_UNSET_HOST:string")
	require.EqualError(t, err, "2 of 2 variables failed")
	assert.Contains(t, out, `ENVOPT_CLI_PORT: variable "ENVOPT_CLI_PORT" has invalid value`)
	assert.Contains(t, out, `ENVOPT_CLI_UNSET_HOST: variable "ENVOPT_CLI_UNSET_HOST" is not set`)

	line, _, _ := strings.Cut(logs, "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "ENVOPT_CLI_PORT", entry["variable"])
	assert.Equal(t, "check failed", entry["message"])
}

func TestCheck_PrefixAndOverrides(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SVC_HOST", "10.0.0.1")
	t.Setenv("SVC_WORKERS", "2")

	out, _, err := execute(t, "check", "--prefix", "SVC_", "--set", "SVC_WORKERS=8", "HOST:addr", "WORKERS:uint")
	require.NoError(t, err)
	assert.Equal(t, "HOST=10.0.0.1\nWORKERS=8\n", out)
}

func TestCheck_InvalidDefault(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	out, _, err := execute(t, "check", "--default", "ENVOPT_CLI_UNSET_PORT:int=http")
	require.Error(t, err)
	assert.Contains(t, out, "default for ENVOPT_CLI_UNSET_PORT")
}

func TestCheck_Usage(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	_, _, err := execute(t, "check")
	assert.EqualError(t, err, "no variables to check")

	_, _, err = execute(t, "check", "--set", "NOVALUE", "PORT:int")
	assert.EqualError(t, err, `--set "NOVALUE": expected KEY=VALUE`)
}

func TestLogOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := logOptionsFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `variable "LOG_FORMAT" has invalid value`)

	t.Setenv("LOG_FORMAT", "json")
	opts, err := logOptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, logOptions{Level: zerolog.WarnLevel, Format: formatJSON}, opts)
}

func TestLogFlagsOverrideEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("ENVOPT_CLI_PORT", "9090")

	_, logs, err := execute(t, "check", "--log-format", "json", "--log-level", "debug", "ENVOPT_CLI_PORT:int")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(logs)), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "check passed", entry["message"])
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
