package defaults

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Clean exit
	ExitViolations    = 1 // Scan finished with ERROR-level violations
	ExitUserError     = 2 // Invalid arguments, configuration or input file
	ExitNetworkError  = 3 // Analysis service unreachable or rejected the call
	ExitInternalError = 4 // Unexpected internal error
)
