// SPDX-License-Identifier: MPL-2.0

package deps

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		opts        Options
		wantKind    Kind
		wantSource  string
		wantArchive string
	}{
		{
			name:        "absolute path matching a package",
			path:        "/usr/share/texmf/tex/latex/biblatex/biblatex.sty",
			opts:        Options{Packages: []string{"biblatex"}, StripComments: true},
			wantKind:    KindPackageFile,
			wantSource:  "/usr/share/texmf/tex/latex/biblatex/biblatex.sty",
			wantArchive: "biblatex.sty",
		},
		{
			name:     "absolute path not matching any package",
			path:     "/usr/share/texmf/tex/latex/geometry/geometry.sty",
			opts:     Options{Packages: []string{"biblatex"}, StripComments: true},
			wantKind: KindAbsoluteOther,
		},
		{
			name:     "absolute path with no packages configured",
			path:     "/usr/share/texmf/tex/latex/biblatex/biblatex.sty",
			opts:     Options{StripComments: true},
			wantKind: KindAbsoluteOther,
		},
		{
			name:        "tex source with stripping enabled",
			path:        "sections/intro.tex",
			opts:        Options{StripComments: true},
			wantKind:    KindTexSource,
			wantSource:  "sections/intro.tex",
			wantArchive: "sections/intro.tex",
		},
		{
			name:        "tex source with stripping disabled archives verbatim",
			path:        "sections/intro.tex",
			opts:        Options{StripComments: false},
			wantKind:    KindOther,
			wantSource:  "sections/intro.tex",
			wantArchive: "sections/intro.tex",
		},
		{
			name:        "eps graphic remapped to its converted pdf",
			path:        "figs/plot.eps",
			opts:        Options{StripComments: true},
			wantKind:    KindEPSGraphic,
			wantSource:  "figs/plot-eps-converted-to.pdf",
			wantArchive: "figs/plot.pdf",
		},
		{
			name:     "converted artifact is dropped",
			path:     "figs/plot-eps-converted-to.pdf",
			opts:     Options{StripComments: true},
			wantKind: KindConvertedArtifact,
		},
		{
			name:        "bib database",
			path:        "refs.bib",
			opts:        Options{StripComments: true},
			wantKind:    KindBibDatabase,
			wantSource:  "refs.bib",
			wantArchive: "refs.bib",
		},
		{
			name:        "anything else verbatim",
			path:        "style.cls",
			opts:        Options{StripComments: true},
			wantKind:    KindOther,
			wantSource:  "style.cls",
			wantArchive: "style.cls",
		},
		{
			name:     "package names are escaped, not patterns",
			path:     "/texmf/tex/latex/aXb/whatever.sty",
			opts:     Options{Packages: []string{"a.b"}, StripComments: true},
			wantKind: KindAbsoluteOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := newClassifier(tt.opts)
			e := cls.classify(tt.path)
			if e.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", e.Kind, tt.wantKind)
			}
			if e.SourcePath != tt.wantSource {
				t.Errorf("source = %q, want %q", e.SourcePath, tt.wantSource)
			}
			if e.ArchiveName != tt.wantArchive {
				t.Errorf("archive name = %q, want %q", e.ArchiveName, tt.wantArchive)
			}
		})
	}
}
