package models

type CallerKind string

const (
	CallerUser   CallerKind = "user"
	CallerClient CallerKind = "client"
)

const (
	ScopeRead  = "read"
	ScopeWrite = "write"
)

// Caller is the identity resolved at the auth boundary: either an end user
// (JWT) or an API client (OAuth2 client credentials). It is resolved once
// per request and passed explicitly to the services.
type Caller struct {
	Kind   CallerKind
	User   *User
	Client *APIClient
	Token  *AccessToken
}

// OwnerID is the string every owned row is keyed by: the user's UUID for
// end users, the client_id for API clients.
func (c Caller) OwnerID() string {
	if c.Kind == CallerClient && c.Client != nil {
		return c.Client.ClientID
	}
	if c.User != nil {
		return c.User.ID.String()
	}
	return ""
}

// HasScope reports whether the caller may perform operations guarded by
// the given scope. User tokens carry full access; client tokens are
// limited to the scopes issued with them.
func (c Caller) HasScope(scope string) bool {
	if c.Kind == CallerUser {
		return true
	}
	if c.Token == nil {
		return false
	}
	for _, s := range c.Token.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func (c Caller) IsAdmin() bool {
	return c.Kind == CallerUser && c.User != nil && c.User.IsAdmin
}
