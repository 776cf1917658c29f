package fetch

// RedirectMode is the policy for handling 3xx responses.
//
// Modes are:
//   - RedirectFollow: follow the Location chain, up to 20 hops
//   - RedirectManual: return the 3xx response verbatim, with an
//     absolutized Location header
//   - RedirectError: fail the fetch on any redirect
type RedirectMode string

const (
	// RedirectFollow follows redirects automatically.
	// This is the default mode.
	RedirectFollow RedirectMode = "follow"

	// RedirectManual returns 3xx responses to the caller unfollowed.
	RedirectManual RedirectMode = "manual"

	// RedirectError rejects the fetch when the server responds with a
	// redirect.
	RedirectError RedirectMode = "error"
)

// String returns the mode as a string.
func (m RedirectMode) String() string {
	return string(m)
}

// valid reports whether m is one of the accepted modes.
func (m RedirectMode) valid() bool {
	switch m {
	case RedirectFollow, RedirectManual, RedirectError:
		return true
	}
	return false
}

// maxRedirects is the hop cap for RedirectFollow.
const maxRedirects = 20
