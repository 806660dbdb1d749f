// SPDX-License-Identifier: MPL-2.0

// arxiv-collector packages a LaTeX document and everything its build
// actually read into a tar.gz archive ready for arXiv submission. It
// delegates compilation to latexmk and treats the dependency listing
// latexmk emits as the interface contract.
package main

func main() {
	Execute()
}
