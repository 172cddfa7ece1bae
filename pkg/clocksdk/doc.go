// Package clocksdk provides a typed Go client for the timeclock service
// API, plus the request/response and error types shared between the client
// and the server's HTTP handlers.
//
// Authentication is delegated to the external identity provider: callers
// obtain a bearer token out of band and hand it to the client via a
// TokenSource.
//
// Basic usage:
//
//	client := clocksdk.NewClient("https://timeclock.example.com",
//		clocksdk.StaticToken(accessToken))
//
//	event, err := client.ClockIn(ctx, clocksdk.ClockRequest{
//		LocationID: locationID,
//		Lat:        -33.8688,
//		Lng:        151.2093,
//	})
//
// Errors returned by the API are typed *APIError values; branch on the
// Code field rather than the message.
package clocksdk
