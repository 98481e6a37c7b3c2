// Package github reads the keyword table from a TOML file kept in a GitHub
// repository, so a review team can share one reviewed list.
//
// The file uses the same layout as the local keyword file (see package
// keywordfile). It is fetched through the repository contents API.
//
// # Authentication
//
// A token is optional. Without one, requests are unauthenticated and only
// public repositories are readable (60 requests per hour). With a personal
// access token, private repositories are readable and the limit is 5,000
// requests per hour.
//
// # Configuration
//
//   - keywords.github.repository: "owner/name"
//   - keywords.github.path: file path in the repository (default keywords.toml)
//   - keywords.github.ref: branch, tag or commit (default branch when empty)
package github
