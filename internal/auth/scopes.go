package auth

// Known OAuth scopes used by the roster API.
const (
	ScopeRosterWrite = "roster:write"
	ScopeRosterRead  = "roster:read"
)
