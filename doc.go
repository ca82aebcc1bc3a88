// Package ledger turns heterogeneous broker export files into one
// validated, queryable record set per client.
//
// The core functionalities include:
//   - File Classification: Deciding, from a file's name and its place in
//     the directory tree, what it contains (trade book, capital gains
//     statement, holdings export) and which client and broker it
//     belongs to.
//   - Extraction: Reading spreadsheets and delimited text files into a
//     uniform raw grid, including delimiter sniffing and the unpacking
//     of single-column exports whose cells contain embedded tabs.
//   - Normalization: Mapping broker-specific column names onto one
//     canonical trade and capital gains schema, with exact decimal
//     arithmetic throughout.
//   - Validation: Applying a fixed rule set to every normalized record
//     and collecting violations into a structured report instead of
//     aborting.
//   - Aggregation: Deriving current holdings, weighted-average buy
//     prices and realized P&L rollups from the validated record sets.
//
// This package serves as the foundational logic for the `invman`
// command-line tool; the pipeline entry point is Run.
package ledger
