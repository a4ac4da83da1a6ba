// Package exitcode defines the process exit statuses of the todo CLI.
package exitcode

const (
	// Success indicates successful completion, including the final save.
	Success = 0

	// Failure covers errors with no more specific status.
	Failure = 1

	// Usage indicates a parse failure: bad subcommand, arguments or flags.
	Usage = 2

	// IndexOutOfRange indicates a position outside the current list.
	IndexOutOfRange = 3

	// Config indicates a configuration error, such as an unknown owner.
	Config = 4

	// Corrupt indicates a task file that could not be decoded.
	Corrupt = 5

	// IO indicates the task file could not be read or written.
	IO = 6
)
