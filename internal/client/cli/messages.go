package cli

import (
	"errors"
	"net/http"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/services"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/session"
)

const (
	msgSessionExpired = "Session expired, please log in again."
	msgUnreachable    = "Cannot reach the server, check your internet connection."
	msgNoLocalCopy    = "You are offline and there is no saved copy of this page yet."
	msgNotLoggedIn    = "You are not logged in. Use 'login' or 'register' first."
	msgMalformed      = "The server sent a response the app does not understand."
	msgNotFound       = "Not found."
)

// rejectedError is a login or registration the server refused.
type rejectedError struct {
	op     string
	reason string
	fields map[string][]string
}

func (e *rejectedError) Error() string {
	return e.op + " failed: " + e.reason
}

// describeError maps an error to the sentence shown to the user.
func describeError(err error) string {
	var (
		re *rejectedError
		he *client.HTTPError
		me *client.MalformedResponseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &re):
		return re.Error()
	case client.IsSessionExpired(err):
		return msgSessionExpired
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return msgNoLocalCopy
	case client.IsNetworkError(err):
		return msgUnreachable
	case errors.Is(err, session.ErrNotAuthenticated):
		return msgNotLoggedIn
	case errors.As(err, &he):
		if he.StatusCode == http.StatusNotFound {
			return msgNotFound
		}
		return he.Reason()
	case errors.As(err, &me):
		return msgMalformed
	case errors.Is(err, services.ErrRejected):
		return err.Error()
	}
	return err.Error()
}
