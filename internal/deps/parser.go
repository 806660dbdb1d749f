// SPDX-License-Identifier: MPL-2.0

package deps

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	texExt = ".tex"
	epsExt = ".eps"
	bibExt = ".bib"

	// convertedSuffix names epstopdf output generated by latexmk next to
	// the source .eps file.
	convertedSuffix = "-eps-converted-to.pdf"

	// endSentinel optionally follows the terminator line.
	endSentinel = "[end of file]"

	headerExpectation = `a line like "#===Dependents for <source>:"`
)

// Accepted structural grammars, tried in sequence. latexmk changed the
// header wording across versions and some versions embed the deps file's
// own name in the target declaration; both forms must parse.
var (
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^#===Dependents for (.*):$`),
		regexp.MustCompile(`^#===Dependents, and related info, for (.*):$`),
	}

	targetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\S+) :\\$`),
		regexp.MustCompile(`^\S+ (\S+) :\\$`),
	}
)

type (
	// Options control parsing and classification of a dependency listing.
	Options struct {
		// SourceName, when non-empty, requires the header line to name
		// exactly this source file. When empty the header's own name is
		// trusted.
		SourceName string

		// Packages are package names swept from absolute paths. An
		// absolute entry whose path contains /<name>/ for any configured
		// name is kept under its basename; other absolute entries are
		// dropped.
		Packages []string

		// StripComments mirrors the assembler toggle: when true, .tex
		// entries classify as KindTexSource; when false they fall through
		// to KindOther and archive verbatim.
		StripComments bool
	}

	// classifier applies the fixed tie-break order from the options. It is
	// built once per Parse call; the package alternation is compiled here
	// rather than kept as mutable package state.
	classifier struct {
		pkgPattern    *regexp.Regexp // nil when no packages are configured
		stripComments bool
	}

	// lineCursor walks a line-oriented source, tracking the 1-based
	// position for error reporting. It exists so the parser can be tested
	// without real files.
	lineCursor struct {
		sc *bufio.Scanner
		n  int
	}
)

func newLineCursor(r io.Reader) *lineCursor {
	return &lineCursor{sc: bufio.NewScanner(r)}
}

func (c *lineCursor) next() (string, bool) {
	if !c.sc.Scan() {
		return "", false
	}
	c.n++
	return c.sc.Text(), true
}

func newClassifier(opts Options) *classifier {
	c := &classifier{stripComments: opts.StripComments}
	if len(opts.Packages) > 0 {
		quoted := make([]string, len(opts.Packages))
		for i, p := range opts.Packages {
			quoted[i] = regexp.QuoteMeta(p)
		}
		c.pkgPattern = regexp.MustCompile(`/(?:` + strings.Join(quoted, "|") + `)/`)
	}
	return c
}

// classify assigns the terminal Kind for a single path. The cases are
// evaluated in a fixed order; the first match wins.
func (c *classifier) classify(dep string) Entry {
	e := Entry{Path: dep}
	switch {
	case filepath.IsAbs(dep):
		if c.pkgPattern != nil && c.pkgPattern.MatchString(dep) {
			e.Kind = KindPackageFile
			e.SourcePath = dep
			e.ArchiveName = filepath.Base(dep)
		} else {
			e.Kind = KindAbsoluteOther
		}
	case strings.HasSuffix(dep, texExt) && c.stripComments:
		e.Kind = KindTexSource
		e.SourcePath = dep
		e.ArchiveName = dep
	case strings.HasSuffix(dep, epsExt):
		base := strings.TrimSuffix(dep, epsExt)
		e.Kind = KindEPSGraphic
		e.SourcePath = base + convertedSuffix
		e.ArchiveName = base + ".pdf"
	case strings.HasSuffix(dep, convertedSuffix):
		e.Kind = KindConvertedArtifact
	case strings.HasSuffix(dep, bibExt):
		e.Kind = KindBibDatabase
		e.SourcePath = dep
		e.ArchiveName = dep
	default:
		e.Kind = KindOther
		e.SourcePath = dep
		e.ArchiveName = dep
	}
	return e
}

// Parse reads a dependency listing from r and returns the classified
// Listing. Structural violations return a *ParseError naming the offending
// line and the expected form; no partial listing is ever returned.
func Parse(r io.Reader, opts Options) (*Listing, error) {
	cur := newLineCursor(r)
	cls := newClassifier(opts)

	line, ok := cur.next()
	if !ok {
		return nil, parseErr(cur, "", ErrUnexpectedEndOfInput, headerExpectation)
	}
	var source string
	for _, p := range headerPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			source = m[1]
			break
		}
	}
	if source == "" {
		return nil, parseErr(cur, line, ErrMalformedHeader, headerExpectation)
	}
	if opts.SourceName != "" && source != opts.SourceName {
		return nil, parseErr(cur, line, ErrMalformedHeader,
			fmt.Sprintf("a header naming %q", opts.SourceName))
	}
	base := strings.TrimSuffix(source, filepath.Ext(source))

	line, ok = cur.next()
	if !ok {
		return nil, parseErr(cur, "", ErrUnexpectedEndOfInput,
			fmt.Sprintf(`a target like "%s.pdf :\"`, base))
	}
	var target string
	for _, p := range targetPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			target = m[1]
			break
		}
	}
	if target == "" {
		return nil, parseErr(cur, line, ErrMalformedTarget,
			fmt.Sprintf(`a target like "%s.pdf :\"`, base))
	}

	listing := &Listing{
		SourceName: source,
		BaseName:   base,
		JobName:    strings.TrimSuffix(target, filepath.Ext(target)),
	}

	// Both the full source name and the extension-stripped base name are
	// accepted in the terminator, depending on the latexmk version.
	terminators := []string{
		"#===End dependents for " + source + ":",
		"#===End dependents for " + base + ":",
	}

	for {
		line, ok = cur.next()
		if !ok {
			if err := cur.sc.Err(); err != nil {
				return nil, fmt.Errorf("read dependency listing: %w", err)
			}
			return nil, parseErr(cur, "", ErrUnexpectedEndOfInput,
				fmt.Sprintf("the terminator %q", terminators[0]))
		}
		if line == terminators[0] || line == terminators[1] {
			break
		}
		dep := strings.TrimSpace(line)
		dep = strings.TrimSuffix(dep, `\`)
		if dep == "" {
			continue
		}
		entry := cls.classify(dep)
		if entry.Kind == KindBibDatabase {
			listing.UsedBibliography = true
		}
		listing.Entries = append(listing.Entries, entry)
	}

	// An optional "[end of file]" sentinel may follow the terminator.
	if line, ok = cur.next(); ok && line != endSentinel {
		return nil, parseErr(cur, line, ErrUnexpectedTrailer,
			fmt.Sprintf("%q or end of input", endSentinel))
	}
	if err := cur.sc.Err(); err != nil {
		return nil, fmt.Errorf("read dependency listing: %w", err)
	}

	return listing, nil
}

func parseErr(cur *lineCursor, line string, sentinel error, expected string) *ParseError {
	return &ParseError{LineNo: cur.n, Line: line, Expected: expected, Err: sentinel}
}
