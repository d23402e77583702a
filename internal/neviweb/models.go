package neviweb

import "encoding/json"

// BadLoginCode is the structured error code the service returns for wrong
// credentials. Any other code is treated as a service-side failure rather
// than bad credentials.
const BadLoginCode = "USRBADLOGIN"

// LoginRequest is the JSON body of POST /api/login.
//
// Interface and StayConnected are fixed protocol values: the service
// expects "neviweb" and 1 from API clients.
type LoginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Interface     string `json:"interface"`
	StayConnected int    `json:"stayConnected"`
}

// Account identifies the cloud account a login belongs to. The service
// sends the id as a JSON number; json.Number keeps it exact for use as a
// query value.
type Account struct {
	ID json.Number `json:"id"`
}

// ErrorPayload is the structured error the service embeds in an otherwise
// 200 response: {"error":{"code":"USRBADLOGIN"}}.
type ErrorPayload struct {
	Code string `json:"code"`
}

// LoginResponse is the relevant subset of the login response. The service
// returns considerably more (user profile, permissions); only the fields
// the wizard needs are decoded.
type LoginResponse struct {
	Session string        `json:"session"`
	Account *Account      `json:"account"`
	Error   *ErrorPayload `json:"error"`
}

// Location is one named sub-network ("location") under an account, as
// returned by GET /api/locations.
type Location struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Session carries the authenticated state follow-up calls need. The login
// cookies live in the Client's cookie jar, so a Session is only valid with
// the Client that produced it.
type Session struct {
	// ID is sent as the Session-Id header on follow-up calls
	ID string

	// AccountID is the stringified account id for the locations query
	AccountID string
}

// ValidationResult is what a successful credential check yields: the
// display title for the new entry and the names of the account's
// sub-networks, in the order the service listed them.
type ValidationResult struct {
	Title    string
	Networks []string
}
