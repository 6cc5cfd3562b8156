// Package fields provisions the SEO field on content bundles: field storage,
// per-bundle field instances, and the default form and view display
// components. Persistence goes through the Store interface; MemoryStore backs
// tests and dry runs, sqlitestore backs the CLI.
package fields
