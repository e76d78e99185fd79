package protocol

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleHeaders = "x-zowe-daemon-headers:8;x-zowe-daemon-version:1;x-zowe-daemon-exit:1;x-zowe-daemon-stdout:1;x-zowe-daemon-stderr:0;x-zowe-daemon-prompt:0;x-zowe-daemon-progress:0;x-zowe-daemon-end:0"

func TestParseHeaders_Sample(t *testing.T) {
	headers := ParseHeaders(sampleHeaders)

	if len(headers) != 8 {
		t.Fatalf("expected 8 entries, got %d: %v", len(headers), headers)
	}
	if got := headers.Get(HeaderStart); got != 8 {
		t.Errorf("%s = %d, want 8", HeaderStart, got)
	}
	if got := headers.Get(HeaderVersion); got != 1 {
		t.Errorf("%s = %d, want 1", HeaderVersion, got)
	}
	if got := headers.Exit(); got != 1 {
		t.Errorf("exit = %d, want 1", got)
	}
	if headers.Prompt() != PromptNone {
		t.Errorf("prompt = %d, want %d", headers.Prompt(), PromptNone)
	}
}

func TestParseHeaders_TrailingNewline(t *testing.T) {
	for _, suffix := range []string{"\n", "\r\n", "\nmore data\n"} {
		headers := ParseHeaders(sampleHeaders + suffix)
		if len(headers) != 8 {
			t.Errorf("suffix %q: expected 8 entries, got %d", suffix, len(headers))
		}
	}
}

func TestParseHeaders_Idempotent(t *testing.T) {
	first := ParseHeaders(sampleHeaders)
	second := ParseHeaders(sampleHeaders)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}
}

func TestParseHeaders_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty", line: ""},
		{name: "plain text", line: "hello world\n"},
		{
			name: "too few fields",
			line: "x-zowe-daemon-headers:7;x-zowe-daemon-version:1;x-zowe-daemon-exit:0;x-zowe-daemon-stdout:1;x-zowe-daemon-stderr:0;x-zowe-daemon-prompt:0;x-zowe-daemon-end:0",
		},
		{
			name: "first field lacks start marker",
			line: strings.Replace(sampleHeaders, "x-zowe-daemon-headers", "x-zowe-daemon-begin", 1),
		},
		{
			name: "last field lacks end marker",
			line: strings.Replace(sampleHeaders, "x-zowe-daemon-end", "x-zowe-daemon-stop", 1),
		},
		{
			name: "non integer value",
			line: strings.Replace(sampleHeaders, "x-zowe-daemon-exit:1", "x-zowe-daemon-exit:yes", 1),
		},
		{
			name: "field without separator",
			line: strings.Replace(sampleHeaders, "x-zowe-daemon-stdout:1", "x-zowe-daemon-stdout", 1),
		},
		{
			name: "unsupported version",
			line: strings.Replace(sampleHeaders, "x-zowe-daemon-version:1", "x-zowe-daemon-version:2", 1),
		},
		{
			name: "missing version",
			line: strings.Replace(sampleHeaders, "x-zowe-daemon-version:1", "x-zowe-daemon-other:1", 1),
		},
		{
			name: "header on second line only",
			line: "plain\n" + sampleHeaders,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := ParseHeaders(tt.line)
			if !headers.IsEmpty() {
				t.Errorf("expected empty header set, got %v", headers)
			}
		})
	}
}

func TestParseHeaders_ExtraFieldsTolerated(t *testing.T) {
	line := "x-zowe-daemon-headers:9;x-zowe-daemon-version:1;x-zowe-daemon-exit:0;x-zowe-daemon-stdout:1;x-zowe-daemon-stderr:0;x-zowe-daemon-prompt:2;x-zowe-daemon-progress:0;x-zowe-daemon-color:1;x-zowe-daemon-end:0"

	headers := ParseHeaders(line)
	if len(headers) != 9 {
		t.Fatalf("expected 9 entries, got %d", len(headers))
	}
	if headers.Prompt() != PromptMasked {
		t.Errorf("prompt = %d, want %d", headers.Prompt(), PromptMasked)
	}
	if headers.Get("x-zowe-daemon-color") != 1 {
		t.Errorf("extra field not kept: %v", headers)
	}
}

func TestParseHeaders_ValueWhitespace(t *testing.T) {
	line := strings.Replace(sampleHeaders, "x-zowe-daemon-exit:1", "x-zowe-daemon-exit: 3 ", 1)
	if got := ParseHeaders(line).Exit(); got != 3 {
		t.Errorf("exit = %d, want 3", got)
	}
}

func TestFormatHeaders_RoundTrip(t *testing.T) {
	line := FormatHeaders(map[string]int{
		HeaderExit:   1,
		HeaderStdout: 1,
	})
	if line != sampleHeaders {
		t.Fatalf("FormatHeaders =\n%s\nwant\n%s", line, sampleHeaders)
	}

	withExtra := FormatHeaders(map[string]int{HeaderPrompt: 1, "x-zowe-daemon-zz": 4})
	headers := ParseHeaders(withExtra)
	if headers.Get(HeaderStart) != 9 {
		t.Errorf("%s = %d, want 9", HeaderStart, headers.Get(HeaderStart))
	}
	if headers.Get("x-zowe-daemon-zz") != 4 || headers.Prompt() != PromptPlain {
		t.Errorf("unexpected headers: %v", headers)
	}
	if !strings.HasSuffix(withExtra, ";x-zowe-daemon-zz:4;x-zowe-daemon-end:0") {
		t.Errorf("extra field should precede end marker: %s", withExtra)
	}
}

func TestHeaderSet_Clone(t *testing.T) {
	original := ParseHeaders(sampleHeaders)
	clone := original.Clone()
	clone[HeaderPrompt] = PromptMasked

	if original.Prompt() != PromptNone {
		t.Error("mutating the clone changed the original")
	}
}
