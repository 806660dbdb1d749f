// SPDX-License-Identifier: MPL-2.0

package latexmk

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/log"
)

// scriptName is the file extracted from the release zip.
const scriptName = "latexmk.pl"

// VersionCTAN selects the current release from the CTAN mirror network.
const VersionCTAN = "ctan"

//nolint:gochecknoglobals // Test seam for the download origin.
var fetchURLFor = fetchURL

// fetchURL maps a requested version to its download URL. CTAN only hosts
// the current release; specific versions come from the author's archive.
func fetchURL(version string) string {
	if strings.EqualFold(version, VersionCTAN) {
		return "http://mirrors.ctan.org/support/latexmk.zip"
	}
	v := strings.ReplaceAll(version, ".", "")
	return fmt.Sprintf("http://personal.psu.edu/jcc8/software/latexmk-jcc/latexmk-%s.zip", v)
}

// Fetch downloads the requested latexmk release and writes the extracted
// latexmk.pl script to dest with the execute bits set. Fetch refuses to
// overwrite an existing dest.
func Fetch(ctx context.Context, logger *log.Logger, version, dest string) error {
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("%s already exists; delete it first if you want a fresh copy", dest)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("probe %s: %w", dest, err)
	}

	url := fetchURLFor(version)
	logger.Info("downloading latexmk", "version", version, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return fmt.Errorf("open %s as zip: %w", url, err)
	}

	for _, zf := range zr.File {
		if path.Base(zf.Name) != scriptName {
			continue
		}
		if err := writeScript(zf, dest); err != nil {
			return err
		}
		logger.Info("saved latexmk script", "path", dest)
		return nil
	}
	return fmt.Errorf("couldn't find %s in %s", scriptName, url)
}

// writeScript extracts one zip member to dest and copies its read bits to
// execute bits so the script is directly runnable.
func writeScript(zf *zip.File, dest string) error {
	src, err := zf.Open()
	if err != nil {
		return fmt.Errorf("open %s in zip: %w", zf.Name, err)
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	fi, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dest, err)
	}
	mode := fi.Mode()
	mode |= (mode & 0o444) >> 2
	if err := os.Chmod(dest, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", dest, err)
	}
	return nil
}
