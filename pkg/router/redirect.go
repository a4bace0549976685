package router

import (
	"errors"
	"fmt"
)

// Redirect is the control-flow signal a hook or load returns to abort the
// current attempt and restart it against a new target. It is not a
// user-visible error: the engine follows redirect chains transparently and
// a redirect never reaches OnError or the caller.
type Redirect struct {
	// Target is an href string or a Target value, like a navigation target.
	Target any
}

// Error implements the error interface so redirects can travel through
// ordinary hook return values.
func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %v", r.Target)
}

// RedirectTo returns the redirect signal for target. Call it only from
// within a before hook or a load function.
func RedirectTo(target any) error {
	return &Redirect{Target: target}
}

// asRedirect extracts a redirect signal from a hook result, nil otherwise.
func asRedirect(err error) *Redirect {
	var rd *Redirect
	if errors.As(err, &rd) {
		return rd
	}
	return nil
}
