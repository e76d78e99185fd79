package protocol

import "strings"

// ReplyMarker prefixes every prompt reply sent back to the daemon.
const ReplyMarker = "x-zowe-daemon-reply:"

// FormatReply frames user input as a reply to a pending prompt. Any line
// ending already present on input is replaced by a single newline.
func FormatReply(input string) string {
	input = strings.TrimSuffix(input, "\n")
	input = strings.TrimSuffix(input, "\r")
	return ReplyMarker + input + "\n"
}

// ParseReply extracts the user input from a reply frame. The second
// result is false when frame is not a reply.
func ParseReply(frame string) (string, bool) {
	input, ok := strings.CutPrefix(frame, ReplyMarker)
	if !ok {
		return "", false
	}
	input = strings.TrimSuffix(input, "\n")
	input = strings.TrimSuffix(input, "\r")
	return input, true
}
