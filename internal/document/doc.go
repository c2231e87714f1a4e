// Package document loads transcriptions from disk.
//
// Plain text files are read as UTF-8 and left unsplit; the pipeline splits
// them into pages. Word documents (.docx) carry explicit page breaks, so
// they are returned already split into pages.
//
// Documents are read eagerly and completely before any alignment starts.
package document
