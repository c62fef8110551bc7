// Package prompt provides the interactive prompts prog shows on a terminal.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [Pick]: fuzzy-filtered single selection, used when find has several candidates
//
// Prompts render to stderr so stdout only ever carries the chosen path.
package prompt
