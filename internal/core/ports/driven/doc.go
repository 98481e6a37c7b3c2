// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - KeywordSource: Supplies the keyword table (Google Sheets, GitHub, local file)
//   - Normaliser: Turns one upload format into a Document
//   - NormaliserRegistry: Selects the normaliser for a declared format
//   - Emitter: Serialises a Document into the output container
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - OutputWriter: Persists an emitted document. The MCP adapter returns
//     bytes to its caller instead and does not need one.
//   - KeywordCache: Last fetched keyword table, used when the source is
//     unreachable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
