// Package neviweb provides an HTTP client for the Neviweb cloud API.
//
// This package implements the two calls the setup wizard depends on:
// authenticating an account (POST /api/login) and listing the account's
// named sub-networks (GET /api/locations). The login cookies are kept in
// the client's cookie jar, so both calls must go through the same Client.
//
// # Usage Example
//
//	client := neviweb.NewClient("") // production endpoint
//
//	// nil runner executes the calls inline; pass a worker pool to move
//	// them off the calling goroutine
//	result, err := client.Validate(ctx, nil, "jane@example.com", "hunter2")
//	if err != nil {
//	    if neviweb.IsAuthError(err) {
//	        // wrong credentials - re-prompt
//	    }
//	    log.Fatal(err)
//	}
//
//	fmt.Println(result.Title)    // "jane@example.com"
//	fmt.Println(result.Networks) // ["Home", "Cottage"]
//
// # Error Handling
//
// All failures are returned as *ServiceError with a classified Type.
// The wizard cares about one distinction above all: bad credentials
// (IsAuthError) versus everything else that prevented a useful answer
// (IsConnectError). Transport errors are further classified (timeout,
// DNS, connection refused) to drive the troubleshooting hints shown to
// the user.
//
// # Fixed Protocol Values
//
// The login body always carries interface="neviweb" and stayConnected=1;
// the locations query key is the literal string "account$id". These are
// service conventions, not tunables.
//
// # Thread Safety
//
// A Client is safe for concurrent use, but the session cookies in its jar
// belong to whichever account logged in last. Use one Client per wizard
// flow.
package neviweb
