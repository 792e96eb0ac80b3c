package assistkit

import "errors"

// Sentinel errors that commands branch on for exit status.
var (
	// ErrNotAuthenticated means the token file does not exist.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRefreshFailed means the provider rejected the refresh token.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrBadDate means an event date argument did not match an accepted layout.
	ErrBadDate = errors.New("invalid date")
)

// ExitCode maps an error to a process exit status. Authentication and
// argument errors exit 1; everything else, provider failures included,
// exits 2.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrRefreshFailed) || errors.Is(err, ErrBadDate) {
		return 1
	}
	return 2
}
