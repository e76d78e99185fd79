//go:build !windows

package daemon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestShellScript_Quoting(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/usr/local/bin/zowe", want: "/usr/local/bin/zowe --daemon"},
		{path: "/home/my user/bin/zowe", want: "'/home/my user/bin/zowe' --daemon"},
	}

	for _, tt := range tests {
		got, err := ShellScript(tt.path)
		if err != nil {
			t.Fatalf("ShellScript(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("ShellScript(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestShellLauncher_LaunchDetached(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "args.txt")
	script := "#!/bin/sh\necho \"$@\" > '" + marker + "'\n"
	zowePath := filepath.Join(dir, "zo we")
	if err := os.WriteFile(zowePath, []byte(script), 0755); err != nil { //nolint:gosec // test fixture must be executable
		t.Fatal(err)
	}

	display, err := NewLauncher().LaunchDetached(zowePath)
	if err != nil {
		t.Fatalf("LaunchDetached: %v", err)
	}
	if !strings.HasPrefix(display, "sh -c ") || !strings.HasSuffix(display, " --daemon") {
		t.Errorf("unexpected display command %q", display)
	}

	// The child is never waited on; poll for its side effect.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(marker) //nolint:gosec // test temp file
		if err == nil && strings.TrimSpace(string(data)) == DaemonFlag {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("launched command did not run with the daemon flag")
}
