package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "link failures", err: ValidationError("2 links failed").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "filesystem error", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "markdown error", err: MarkdownError("no heading").Build(), expected: 11},
		{name: "internal error", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified error", err: errors.New("unknown"), expected: 1},
		{
			name:     "wrapped classified error",
			err:      errors.Join(errors.New("outer"), ConfigError("inner").Build()),
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "write markdown file").Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	require.Equal(t, "Error: write markdown file", quiet.FormatError(err))
	require.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError("x").Build()))
	require.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	require.Equal(t, "Error: [filesystem] write markdown file: permission denied", verbose.FormatError(err))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out

	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("unsupported policy kind").WithContext("kind", "regex").Build())

	require.Equal(t, 7, code)
	require.Equal(t, "Error: unsupported policy kind\n", out.String())
	require.Contains(t, logs.String(), "kind=regex")
	require.Contains(t, logs.String(), "category=config")
}
