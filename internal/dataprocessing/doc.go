// Package dataprocessing reconciles the three raw civic datasets — national
// air-emissions accounts, county bathing-water observations and census
// population counts — into analysis-ready tables.
//
// # Architecture
//
// Processing runs as a strict sequence of pure stages:
//
//	raw tables → per-source normalization → identity resolution/aggregation
//	           → integration (three join variants) → derived national metrics
//
// The three per-source normalizations have no data dependency on each other;
// integration requires all three. Every stage copies before deriving, so the
// returned tables are write-once and safe to share.
//
// # Join variants
//
// Three integrated datasets are materialized, one canonical implementation
// each:
//
//  1. pollution_vs_population — census years only, national pollution
//     broadcast onto county census rows, population-proportional emission
//     allocation.
//  2. pollution_vs_water — water-quality summaries left-joined with national
//     pollution by year.
//  3. water_vs_population — the primary analysis table: monitoring-year water
//     rows with the 2022 census population carried to every year.
//
// # Error handling
//
// A dataset whose required fields cannot be recovered is logged and skipped;
// downstream joins leave its fields absent rather than failing. Division
// guards keep the pollution index at 0 when the emissions maximum is 0.
package dataprocessing
