// Package report renders analysis results.
//
// It supports these output formats:
//   - Stats JSON: the category counts and derived character totals
//   - Full JSON: the complete result including the error log and page summaries
//   - CSV: the word error log, the substitution table and per-page counts
//   - Simple: human-readable terminal tables
//   - Markdown: a shareable report with tables and a mermaid pie chart
//
// FileSet writes the standard group of report files for an output prefix.
package report
