// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EditBackend: Applies edit instructions to a PDF and serves the result
//   - SessionResultCache: Persists the last processed-file handle
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PageGeometrySource: Reads page sizes when a document is opened. Without it,
//     geometry must be reported page by page through the editor service.
//   - ImageLoader: Reads image files for the image tool. Without it, only
//     pre-encoded payloads can be placed.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
