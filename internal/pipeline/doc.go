// Package pipeline runs the page-by-page comparison of two transcriptions.
//
// Each aligned page pair is processed by a Pipeline of Steps: CharStep
// aligns and classifies characters, WordStep aligns and classifies word
// blocks and records the error log. The PageProcessor runs one pipeline per
// page with bounded concurrency, and the Orchestrator turns two documents
// into pages, drives the processor and merges the partial results in page
// order.
//
// Pages are independent, so they are processed concurrently with errgroup.
// Every page writes only to its own partial result; merging happens on one
// goroutine afterwards, so the output equals a sequential run.
package pipeline
