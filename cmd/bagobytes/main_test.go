package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bagobytes"
	"github.com/arloliu/bagobytes/internal/hash"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func runTool(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"bagobytes"}, args...), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_Encode(t *testing.T) {
	path := writeFile(t, "hello.txt", []byte("Hello, world!"))

	code, stdout, stderr := runTool(path)
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasSuffix(stdout, "\n"))

	expected, err := bagobytes.EncodeFile([]byte("Hello, world!"))
	require.NoError(t, err)
	require.Equal(t, expected+"\n", stdout)
}

func TestRun_DecodeReversesEncode(t *testing.T) {
	payload := bytes.Repeat([]byte{0x00, 0xFF, 0x10, '\n'}, 5000)
	source := writeFile(t, "payload.bin", payload)

	code, encoded, stderr := runTool("--chunk-capacity", "512", "--verify", source)
	require.Equal(t, 0, code, stderr)

	textFile := writeFile(t, "payload.b64", []byte(encoded))
	code, decoded, stderr := runTool("--decode", textFile)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, payload, []byte(decoded))
}

func TestRun_NoArgument(t *testing.T) {
	code, stdout, stderr := runTool()
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, usage)
	require.NotContains(t, stderr, "Fatal error", "a passing self-test is not reported as an error")
}

func TestRun_NoArgumentLogsSelfTest(t *testing.T) {
	code, _, stderr := runTool("--log-level", "info")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "self-test passed")
}

func TestRun_Errors(t *testing.T) {
	garbage := writeFile(t, "garbage.b64", []byte("not base64!"))
	notZlib := writeFile(t, "man.b64", []byte("TWFu\n"))
	plain := writeFile(t, "plain.txt", []byte("plain"))

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing file", []string{filepath.Join(t.TempDir(), "missing")}, "no such file"},
		{"malformed text", []string{"--decode", garbage}, "malformed base64 input"},
		{"corrupt stream", []string{"-d", notZlib}, "corrupt compressed stream"},
		{"bad capacity", []string{"--chunk-capacity", "1", plain}, "chunk_capacity"},
		{"bad log level", []string{"--log-level", "loud", plain}, "log_level"},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), plain}, "error reading config file"},
		{"too many files", []string{plain, plain}, "expected one FILE argument"},
		{"verify while decoding", []string{"--decode", "--verify", notZlib}, "--verify cannot be combined with --decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runTool(tt.args...)
			require.Equal(t, 1, code)
			require.Empty(t, stdout, "no partial output on failure")
			require.True(t, strings.HasPrefix(stderr, "Fatal error: "), stderr)
			require.Contains(t, stderr, tt.message)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "bagobytes.yaml", []byte("log_level: info\nchunk_capacity: 256\nverify: true\n"))
	plain := writeFile(t, "plain.txt", bytes.Repeat([]byte("configured "), 100))

	code, stdout, stderr := runTool("--config", cfg, plain)
	require.Equal(t, 0, code, stderr)
	require.NotEmpty(t, stdout)
	require.Contains(t, stderr, "encoded file")
	require.Contains(t, stderr, "verified")
	require.Contains(t, stderr, fmt.Sprintf("%016x", hash.Sum(bytes.Repeat([]byte("configured "), 100))))

	code, _, stderr = runTool("--config", cfg, "--log-level", "error", plain)
	require.Equal(t, 0, code)
	require.NotContains(t, stderr, "encoded file", "flags override the config file")
}

func TestRun_DecodeIgnoresConfigVerify(t *testing.T) {
	cfg := writeFile(t, "bagobytes.yaml", []byte("verify: true\n"))
	encoded, err := bagobytes.EncodeFile([]byte("from config"))
	require.NoError(t, err)
	textFile := writeFile(t, "text.b64", []byte(encoded+"\n"))

	code, stdout, stderr := runTool("--config", cfg, "--decode", textFile)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "from config", stdout)
}
