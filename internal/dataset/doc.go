// Package dataset prepares the dialogue corpus the external trainer
// consumes. It covers the whole offline pipeline: converting the raw
// Ubuntu Dialogue Corpus tsv files into paired encoder/decoder turn
// files, building capped most-frequent-first vocabularies, and rewriting
// the turn files as space-separated token ids.
//
// Every step is idempotent: existing artifacts are detected and skipped,
// so an interrupted preparation can simply be re-run.
package dataset
