// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"arxiv-collector/internal/deps"
	"arxiv-collector/internal/fsutil"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
)

type (
	// Options configure a single assembly run.
	Options struct {
		// IncludeBib archives .bib databases verbatim. arXiv ignores them,
		// but callers may want them for other destinations.
		IncludeBib bool

		// ExtractBibName, when non-empty, names an archive member holding
		// the output of ExtractBib: a bibliography reduced to the entries
		// the document actually cites.
		ExtractBibName string

		// ExtractBib produces the extracted bibliography bytes, typically
		// by running biber against the document's .bcf file. Required when
		// ExtractBibName is set.
		ExtractBib func(ctx context.Context) ([]byte, error)

		// Logger receives progress and the missing-.bbl warning. A nil
		// Logger discards everything.
		Logger *log.Logger
	}

	// Result summarizes a completed assembly.
	Result struct {
		// Path is the archive written.
		Path string
		// Members is the number of archive members.
		Members int
		// CompressedSize is the final size of the archive in bytes.
		CompressedSize int64
	}

	// assembler owns the tar stream for one run. Members are written in
	// strict sequential order; there are no parallel writers.
	assembler struct {
		tw      *tar.Writer
		logger  *log.Logger
		members int
	}
)

// Run writes the archive for listing to dest. On any error the partial
// archive is removed; the caller never observes a half-written dest.
func Run(ctx context.Context, listing *deps.Listing, dest string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	gz := gzip.NewWriter(f)
	a := &assembler{tw: tar.NewWriter(gz), logger: logger}

	runErr := a.run(ctx, listing, opts)
	for _, c := range []io.Closer{a.tw, gz, f} {
		if cerr := c.Close(); cerr != nil && runErr == nil {
			runErr = fmt.Errorf("finalize archive: %w", cerr)
		}
	}
	if runErr != nil {
		_ = os.Remove(dest)
		return nil, runErr
	}

	fi, err := os.Stat(dest)
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}
	return &Result{Path: dest, Members: a.members, CompressedSize: fi.Size()}, nil
}

func (a *assembler) run(ctx context.Context, listing *deps.Listing, opts Options) error {
	for _, e := range listing.Entries {
		a.logger.Debug("processing", "path", e.Path, "kind", e.Kind.String())
		switch e.Kind {
		case deps.KindAbsoluteOther, deps.KindConvertedArtifact:
			// Dropped by classification; nothing to write.
		case deps.KindTexSource:
			if err := a.addStripped(e.SourcePath, e.ArchiveName); err != nil {
				return err
			}
		case deps.KindBibDatabase:
			if !opts.IncludeBib {
				continue
			}
			if err := a.addFile(e.SourcePath, e.ArchiveName); err != nil {
				return err
			}
		default:
			if err := a.addFile(e.SourcePath, e.ArchiveName); err != nil {
				return err
			}
		}
	}

	// The compiled bibliography is read from the job name but always
	// archived under the base name, so a -jobname build still produces an
	// archive that builds standalone.
	bbl := listing.JobName + ".bbl"
	if _, err := os.Stat(bbl); err == nil {
		if err := a.addFile(bbl, listing.BaseName+".bbl"); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", bbl, err)
	} else if listing.UsedBibliography {
		a.logger.Warn(fmt.Sprintf("used a .bib file, but didn't find %q; the submission likely won't build", bbl))
	}

	if opts.ExtractBibName != "" {
		if opts.ExtractBib == nil {
			return fmt.Errorf("extract bibliography: no extractor configured for %q", opts.ExtractBibName)
		}
		data, err := opts.ExtractBib(ctx)
		if err != nil {
			return fmt.Errorf("extract bibliography: %w", err)
		}
		if err := a.addBytes(opts.ExtractBibName, data); err != nil {
			return err
		}
		a.logger.Info("adding extracted bibliography", "name", opts.ExtractBibName)
	}

	return nil
}

// addFile archives the file at path under arcname, following symlinks.
func (a *assembler) addFile(path, arcname string) error {
	dest, err := fsutil.ResolveTarget(path)
	if err != nil {
		return err
	}
	fi, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingFileError{Path: path}
		}
		return fmt.Errorf("stat %s: %w", dest, err)
	}

	a.logger.Info("adding", "file", dest)
	if arcname != dest {
		a.logger.Debug("archived as", "name", arcname)
	}

	hdr, err := tar.FileInfoHeader(fi, "")
	if err != nil {
		return fmt.Errorf("header for %s: %w", dest, err)
	}
	hdr.Name = arcname
	if err := a.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header for %s: %w", arcname, err)
	}
	f, err := os.Open(dest)
	if err != nil {
		return fmt.Errorf("open %s: %w", dest, err)
	}
	defer f.Close()
	if _, err := io.Copy(a.tw, f); err != nil {
		return fmt.Errorf("archive %s: %w", dest, err)
	}
	a.members++
	return nil
}

// addStripped archives a tex source under arcname with comments removed.
func (a *assembler) addStripped(path, arcname string) error {
	dest, err := fsutil.ResolveTarget(path)
	if err != nil {
		return err
	}
	f, err := os.Open(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingFileError{Path: path}
		}
		return fmt.Errorf("open %s: %w", dest, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := stripComments(f, &buf); err != nil {
		return fmt.Errorf("strip comments from %s: %w", dest, err)
	}
	a.logger.Info("adding with comments stripped", "file", dest)
	return a.addBytes(arcname, buf.Bytes())
}

// addBytes archives an in-memory member.
func (a *assembler) addBytes(arcname string, data []byte) error {
	hdr := &tar.Header{
		Name:     arcname,
		Mode:     0o644,
		Size:     int64(len(data)),
		ModTime:  time.Now(),
		Typeflag: tar.TypeReg,
	}
	if err := a.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header for %s: %w", arcname, err)
	}
	if _, err := a.tw.Write(data); err != nil {
		return fmt.Errorf("archive %s: %w", arcname, err)
	}
	a.members++
	return nil
}
