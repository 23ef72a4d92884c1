package errors

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCompileError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  CompileError
		want string
	}{
		{
			name: "with tool output",
			err: CompileError{
				Compiler: "less",
				Path:     "css/index.less",
				Output:   "ParseError: Unrecognised input in index.less on line 3\n",
				Err:      fmt.Errorf("exit status 1"),
			},
			want: "compile css/index.less (less): exit status 1\nParseError: Unrecognised input in index.less on line 3",
		},
		{
			name: "no output",
			err:  CompileError{Compiler: "js", Path: "app/index.js", Err: io.ErrUnexpectedEOF},
			want: "compile app/index.js (js): unexpected EOF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileError_Unwrap(t *testing.T) {
	err := WrapCompile("css", "x.css", io.EOF)
	if !Is(err, io.EOF) {
		t.Error("should unwrap to io.EOF")
	}
	if err.Compiler != "css" || err.Path != "x.css" {
		t.Errorf("wrong fields: Compiler=%q Path=%q", err.Compiler, err.Path)
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "port",
				Value:   99999,
				Message: "out of range 1-65535",
				Hint:    "use a port between 1 and 65535",
			},
			want: "config: --port=99999: out of range 1-65535\n  hint: use a port between 1 and 65535",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "public",
				Message: "must not be empty",
			},
			want: "config: --public: must not be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestUnknownMode(t *testing.T) {
	known := []string{"build", "server", "watch"}

	err := UnknownMode("deploy", known)
	if !Is(err, ErrUnknownMode) {
		t.Fatal("should wrap ErrUnknownMode")
	}
	if !strings.Contains(err.Error(), `"deploy"`) {
		t.Errorf("error should name the mode: %v", err)
	}
	if !strings.Contains(err.Error(), "build, server, watch") {
		t.Errorf("error should list known modes: %v", err)
	}

	err = UnknownMode("", known)
	if !Is(err, ErrUnknownMode) || !strings.Contains(err.Error(), "none given") {
		t.Errorf("empty mode: %v", err)
	}
}

func TestIsCompile(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"direct", WrapCompile("less", "a.less", io.EOF), true},
		{"wrapped", fmt.Errorf("package: %w", WrapCompile("less", "a.less", io.EOF)), true},
		{"plain error", fmt.Errorf("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompile(tt.err); got != tt.want {
				t.Errorf("IsCompile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	// Verify sentinel errors are distinct.
	sentinels := []error{ErrUnknownMode, ErrNoCompiler, ErrNoManifest, ErrNoEntry, ErrInvalidManifest}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}

func TestJoin(t *testing.T) {
	shutdown := fmt.Errorf("shutdown: %w", io.ErrClosedPipe)

	tests := []struct {
		name    string
		errs    []error
		wantNil bool
		wantIs  []error
	}{
		{"all nil", []error{nil, nil}, true, nil},
		{"one side", []error{nil, shutdown}, false, []error{io.ErrClosedPipe}},
		{"both sides", []error{shutdown, io.EOF}, false, []error{io.ErrClosedPipe, io.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Join(tt.errs...)
			if (err == nil) != tt.wantNil {
				t.Fatalf("Join() = %v, wantNil %v", err, tt.wantNil)
			}
			for _, target := range tt.wantIs {
				if !Is(err, target) {
					t.Errorf("Join() = %v, should match %v", err, target)
				}
			}
		})
	}
}
