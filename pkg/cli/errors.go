package cli

import (
	"errors"
	"fmt"

	"github.com/relaydesk/relayctl/pkg/client"
	"github.com/relaydesk/relayctl/pkg/store"
)

// FormatConnectionError returns a user-friendly error message. Failures to
// reach the backend and authentication failures get suggestions.
func FormatConnectionError(err error) string {
	switch {
	case errors.Is(err, client.ErrUnreachable):
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Check that the backend is running and reachable
  • Verify the server URL with: relayctl config
  • Switch to another backend with: relayctl context use <name>`, err)
	case errors.Is(err, client.ErrCircuitOpen):
		return fmt.Sprintf(`Error: %s

The backend failed repeatedly; requests are paused. Try again shortly.`, err)
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, store.ErrSessionExpired):
		return fmt.Sprintf(`Error: %s

Sign in again with: relayctl login`, err)
	}
	return "Error: " + err.Error()
}
