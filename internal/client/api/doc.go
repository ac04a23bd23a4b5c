// Package api is the HTTP client for the quizhub server.
//
// A Client holds the base URL, an *http.Client and, after Login or Signup,
// the bearer token sent with every /api/quiz request. Server-side failures
// come back as *Error carrying the status and message from the error
// envelope; transport failures match ErrUnavailable.
package api
