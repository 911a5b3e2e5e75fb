package types

import "github.com/m-mizutani/goerr/v2"

// Error kinds. Every error surfaced to the CLI boundary carries exactly one of
// these tags so the operator can tell which stage of the run failed.
var (
	// ErrTagConfiguration is a missing or invalid input, detected before any network call
	ErrTagConfiguration = goerr.NewTag("configuration_error")

	// ErrTagNetwork is an HTTP transport failure or unexpected response status
	ErrTagNetwork = goerr.NewTag("network_error")

	// ErrTagTimeout is an external command that exceeded its time bound
	ErrTagTimeout = goerr.NewTag("timeout_error")

	// ErrTagProcess is an external command that exited non-zero or could not start
	ErrTagProcess = goerr.NewTag("process_error")

	// ErrTagChecksum is a digest that could not be computed or parsed
	ErrTagChecksum = goerr.NewTag("checksum_error")
)

// ErrorKind returns the name of the first kind tag found on err, or "unknown".
// Local filesystem failures (work directory not writable) carry no tag.
func ErrorKind(err error) string {
	switch {
	case goerr.HasTag(err, ErrTagConfiguration):
		return ErrTagConfiguration.String()
	case goerr.HasTag(err, ErrTagNetwork):
		return ErrTagNetwork.String()
	case goerr.HasTag(err, ErrTagTimeout):
		return ErrTagTimeout.String()
	case goerr.HasTag(err, ErrTagProcess):
		return ErrTagProcess.String()
	case goerr.HasTag(err, ErrTagChecksum):
		return ErrTagChecksum.String()
	default:
		return "unknown"
	}
}
