// Package app assembles and runs the analysis pipeline. One Run is one
// atomic unit of work: raw tables are collected and persisted, processed into
// the integrated tables, analyzed, and the results persisted and exported.
// A failed stage fails the whole run; nothing downstream of the failure is
// written.
package app
