// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, task not found, ambiguous
	// reference, empty task text).
	UserError = 1

	// ConfigError indicates a config or auth error (unreadable config.toml,
	// missing OAuth client or token).
	ConfigError = 2

	// StorageError indicates a storage backend or remote API failure.
	StorageError = 3
)
