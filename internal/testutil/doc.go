// Package testutil contains helper builders and stubs used across tests to
// reduce boilerplate when constructing markup documents, evaluation contexts
// and sessions. These helpers are intentionally minimal and avoid adding
// third‑party dependencies. They are not intended for production usage.
package testutil
