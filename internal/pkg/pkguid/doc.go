// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. Depending on the use case you can generate:
//   - String IDs (for example UUIDs, used for request correlation).
//   - Numeric IDs (for example Snowflake-style IDs, used for pipeline runs).
package pkguid
