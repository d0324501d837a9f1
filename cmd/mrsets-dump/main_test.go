package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the app with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := app.Run(context.Background(), append([]string{"mrsets-dump"}, args...))
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec cli.ExitCoder
	require.True(t, errors.As(err, &ec), "error %v is not an exit coder", err)
	return ec.ExitCode()
}

func TestDecode_Text(t *testing.T) {
	path := writeFile(t, "sample.mrsets", sampleBlob)

	stdout, _, err := run(t, "decode", "--config", "", path)
	require.NoError(t, err)
	assert.Equal(t, renderText(sampleSets(t, sampleBlob)), stdout)
}

func TestDecode_Backends(t *testing.T) {
	path := writeFile(t, "sample.mrsets", sampleBlob)

	for _, backend := range []string{"buffer", "file", "mmap"} {
		t.Run(backend, func(t *testing.T) {
			stdout, _, err := run(t, "decode", "--config", "", "--backend", backend, "--format", "json", path)
			require.NoError(t, err)
			assert.Contains(t, stdout, `"mymrset"`)
		})
	}
}

func TestDecode_ManyFiles(t *testing.T) {
	a := writeFile(t, "a.mrsets", "$first=C 1 x v1\n")
	b := writeFile(t, "b.mrsets", sampleBlob)

	stdout, _, err := run(t, "decode", "--config", "", a, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "==> "+a+" <==\nfirst (category)")
	assert.Contains(t, stdout, "\n\n==> "+b+" <==\ncategorical_array (category)")
}

func TestDecode_Malformed(t *testing.T) {
	path := writeFile(t, "bad.mrsets", "$a=C 1 x v1\n$b=X 1 y v2\n")

	_, _, err := run(t, "decode", "--config", "", path)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "record 2 at offset 15")

	stdout, stderr, err := run(t, "decode", "--config", "", "--lenient", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "mr sets dropped")
}

func TestDecode_Usage(t *testing.T) {
	_, _, err := run(t, "decode", "--config", "")
	assert.Equal(t, 2, exitCode(t, err))

	path := writeFile(t, "sample.mrsets", sampleBlob)
	_, _, err = run(t, "decode", "--config", "", "--format", "xml", path)
	assert.Equal(t, 2, exitCode(t, err))

	_, _, err = run(t, "decode", "--config", "", "--log-level", "loud", path)
	assert.Equal(t, 2, exitCode(t, err))
}

func TestDecode_Metrics(t *testing.T) {
	path := writeFile(t, "sample.mrsets", sampleBlob)

	_, stderr, err := run(t, "decode", "--config", "", "--metrics", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "statmeta_mrsets_decoded_total 2")
	assert.Contains(t, stderr, `statmeta_session_bytes_read_total{backend="file"} 120`)
}

func TestDecode_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "format: yaml\nbackend: mmap\nlenient: true\n")
	path := writeFile(t, "sample.mrsets", sampleBlob)

	stdout, _, err := run(t, "decode", "--config", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "categorical_array:\n")

	// Flags win over the config file.
	stdout, _, err = run(t, "decode", "--config", cfg, "--format", "text", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "categorical_array (category)\n")
}

func TestDecode_EnvOverridesConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "format: yaml\n")
	path := writeFile(t, "sample.mrsets", sampleBlob)
	t.Setenv("STATMETA_FORMAT", "json")

	stdout, _, err := run(t, "decode", "--config", cfg, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "{"), stdout)
}

func TestDecode_BadConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "format: [unterminated\n")
	path := writeFile(t, "sample.mrsets", sampleBlob)

	_, _, err := run(t, "decode", "--config", cfg, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDiff(t *testing.T) {
	old := writeFile(t, "old.mrsets", sampleBlob)
	same := writeFile(t, "same.mrsets", sampleBlob)
	changed := writeFile(t, "new.mrsets", changedBlob)

	stdout, _, err := run(t, "diff", "--config", "", old, same)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	stdout, _, err = run(t, "diff", "--config", "", old, changed)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, stdout, "+  counted value: 2\n")

	_, _, err = run(t, "diff", "--config", "", old)
	assert.Equal(t, 2, exitCode(t, err))
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "version:    0.1.0\n")
}
