package auth

import "context"

// Principal is the authenticated identity attached to a request after the
// token was validated and the user re-read from storage. Handlers pass it
// explicitly into commands instead of digging values out of the request.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Actor returns the identifier recorded in movement logs
func (p Principal) Actor() string {
	if p.Email != "" {
		return p.Email
	}
	return "system"
}

type contextKey struct{}

// WithPrincipal attaches a principal to the context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFromContext extracts the principal placed by the auth middleware
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
