package statmeta

import (
	"errors"
	"strings"
	"testing"
)

func TestMalformedMRError_Error(t *testing.T) {
	tests := []struct {
		name     string
		blob     string
		contains []string
	}{
		{
			name:     "empty blob",
			blob:     "",
			contains: []string{"invalid multiple response set string", "record 1", "offset 0", "empty input"},
		},
		{
			name:     "bad kind in second record",
			blob:     "$a=C 1 x v1\n$b=X 1 y v2\n",
			contains: []string{"record 2", "offset 15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMRString(tt.blob)
			if err == nil {
				t.Fatal("expected error")
			}
			msg := err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestParseMRLine_Error(t *testing.T) {
	_, err := ParseMRLine("q=C 5 Hi")
	if !errors.Is(err, ErrBadMRString) {
		t.Fatalf("ParseMRLine() error = %v, want ErrBadMRString", err)
	}
	if strings.Contains(err.Error(), "record") {
		t.Errorf("single-record error %q should not name a record", err)
	}
}

func TestSentinels_Unwrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"malformed", &MalformedMRError{Reason: "x"}, ErrBadMRString},
		{"seek range", &SeekRangeError{Path: "buffer", Whence: "start", Offset: -1}, ErrSeekOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}
}

func TestWarning_String(t *testing.T) {
	tests := []struct {
		name string
		w    Warning
		want string
	}{
		{"with offset", Warning{Stage: "mrsets", Message: "bad kind", Offset: 15}, "mrsets (at offset 15): bad kind"},
		{"without offset", Warning{Stage: "mrsets", Message: "empty input"}, "mrsets: empty input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion == "" || info.GitCommit == "" {
		t.Errorf("incomplete version info: %+v", info)
	}
	if !strings.HasPrefix(info.String(), "statmeta "+Version) {
		t.Errorf("String() = %q", info.String())
	}
}
