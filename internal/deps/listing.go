// SPDX-License-Identifier: MPL-2.0

package deps

import "fmt"

const (
	// KindPackageFile is an absolute path matching a configured package
	// name. Archived under its basename, the directory is discarded.
	KindPackageFile Kind = iota
	// KindAbsoluteOther is an absolute path outside the configured
	// packages. Never archived.
	KindAbsoluteOther
	// KindTexSource is a .tex file to be archived with comments stripped.
	// Only assigned when comment stripping is enabled; otherwise .tex
	// files fall through to KindOther.
	KindTexSource
	// KindEPSGraphic is a .eps file. Its previously converted PDF sibling
	// is archived in its place, renamed to the original basename with a
	// .pdf extension (arXiv rejects epstopdf output in subdirectories).
	KindEPSGraphic
	// KindConvertedArtifact is a -eps-converted-to.pdf sibling. Never
	// archived: the .eps rule already pulls the file in under its renamed
	// path, and older latexmk versions list both.
	KindConvertedArtifact
	// KindBibDatabase is a .bib file. Archived only on request; its
	// presence flips Listing.UsedBibliography.
	KindBibDatabase
	// KindOther is any remaining relative path, archived verbatim.
	KindOther
)

type (
	// Kind is the terminal classification of a dependency entry. Every
	// entry receives exactly one Kind.
	Kind int

	// Entry is a single classified path from a dependency listing.
	// SourcePath is the on-disk file to archive and ArchiveName the member
	// name to store it under; both are empty for dropped kinds.
	Entry struct {
		Path        string
		Kind        Kind
		SourcePath  string
		ArchiveName string
	}

	// Listing is a fully parsed dependency listing. Entries preserve the
	// order of the input; each is consumed exactly once downstream.
	Listing struct {
		// SourceName is the document source as named in the header line,
		// usually with its .tex extension.
		SourceName string
		// BaseName is SourceName with the extension stripped.
		BaseName string
		// JobName is the build output named by the target line, with the
		// extension stripped. It can differ from BaseName when latexmk
		// runs with -jobname.
		JobName string
		// Entries are the classified dependencies in listing order.
		Entries []Entry
		// UsedBibliography is true if any entry was a .bib database.
		UsedBibliography bool
	}
)

// String returns the human-readable name of a Kind.
func (k Kind) String() string {
	switch k {
	case KindPackageFile:
		return "package file"
	case KindAbsoluteOther:
		return "absolute (dropped)"
	case KindTexSource:
		return "tex source"
	case KindEPSGraphic:
		return "eps graphic"
	case KindConvertedArtifact:
		return "converted artifact (dropped)"
	case KindBibDatabase:
		return "bib database"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}
