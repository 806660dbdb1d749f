// SPDX-License-Identifier: MPL-2.0

// Package latexmk drives the external latexmk build orchestrator: it runs
// the document build that emits the dependency listing, gates known-broken
// latexmk releases, and can fetch a working latexmk script from CTAN.
//
// Invocations block until the child exits; there is no timeout. A failed
// build surfaces the child's combined output and exit status so the CLI
// can mirror the code.
package latexmk
