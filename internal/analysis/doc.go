// Package analysis computes the statistical layer over the processed tables:
// correlation matrices, temporal trends, formal tests and per-county
// summaries, collected into a single Results structure.
//
// Variables are read from integrated rows through a fixed catalogue, each
// entry tagged with a role (emissions, water quality, population). Role tags
// drive sub-matrix selection and ranking direction; variable names are labels
// only and are never parsed.
//
// Sparse data degrades quietly. Pairs with fewer than four overlapping
// observations, constant series and near-flat trends produce no result rather
// than a misleading one. Only an entirely empty input is an error.
package analysis
