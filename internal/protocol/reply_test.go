package protocol

import "testing"

func TestFormatReply(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "secret", want: "x-zowe-daemon-reply:secret\n"},
		{input: "line\n", want: "x-zowe-daemon-reply:line\n"},
		{input: "crlf\r\n", want: "x-zowe-daemon-reply:crlf\n"},
		{input: "", want: "x-zowe-daemon-reply:\n"},
	}

	for _, tt := range tests {
		if got := FormatReply(tt.input); got != tt.want {
			t.Errorf("FormatReply(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseReply(t *testing.T) {
	input, ok := ParseReply(FormatReply("user1"))
	if !ok || input != "user1" {
		t.Errorf("ParseReply = %q, %v; want %q, true", input, ok, "user1")
	}

	if _, ok := ParseReply("hello\n"); ok {
		t.Error("expected non-reply to be rejected")
	}
}
