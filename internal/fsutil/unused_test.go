// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"path/filepath"
	"strings"
	"testing"

	"arxiv-collector/internal/testutil"
)

func TestUnusedPathFreeBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".deps")
	got, err := UnusedPath(base)
	if err != nil {
		t.Fatalf("UnusedPath failed: %v", err)
	}
	if got != base {
		t.Errorf("got %q, want the untouched base %q", got, base)
	}
}

func TestUnusedPathAvoidsExisting(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".deps")
	testutil.MustWriteFile(t, base, "taken")

	got, err := UnusedPath(base)
	if err != nil {
		t.Fatalf("UnusedPath failed: %v", err)
	}
	if got == base {
		t.Fatal("returned a path that already exists")
	}
	if !strings.HasPrefix(got, base+"-") {
		t.Errorf("got %q, want a suffixed variant of %q", got, base)
	}
}
