// SPDX-License-Identifier: MPL-2.0

package biber

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeStub installs an executable shell script standing in for biber.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "biber")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestExtractCapturesStdout(t *testing.T) {
	stub := writeStub(t, `printf '@article{x,title={T}}'`)

	out, err := Extract(context.Background(), stub, "main")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(out) != "@article{x,title={T}}" {
		t.Errorf("stdout = %q", out)
	}
}

func TestExtractPassesBCFName(t *testing.T) {
	// The stub echoes its last argument, which must be the .bcf file.
	stub := writeStub(t, `for a in "$@"; do last="$a"; done; printf '%s' "$last"`)

	out, err := Extract(context.Background(), stub, "paper")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(out) != "paper.bcf" {
		t.Errorf("last argument = %q, want paper.bcf", out)
	}
}

func TestExtractSurfacesFailure(t *testing.T) {
	stub := writeStub(t, `echo "data source not found" >&2
exit 2
`)

	_, err := Extract(context.Background(), stub, "main")
	if err == nil {
		t.Fatal("expected an error from a failing backend")
	}
	if !strings.Contains(err.Error(), "code 2") {
		t.Errorf("error should carry the exit code, got: %v", err)
	}
}
