// Package http exposes the reservation system over a JSON REST surface.
//
// Routes:
//
//	POST   /auth/register      create an account and open a session
//	POST   /auth/login         open a session for an existing account
//	POST   /auth/logout        revoke the current session
//	GET    /reservations       list all reservations with owner emails
//	POST   /reservations       book a time slot
//	PUT    /reservations/{id}  reschedule or rename an owned reservation
//	DELETE /reservations/{id}  cancel an owned reservation
//
// Everything except register and login requires a session token, carried
// either as a bearer Authorization header or a session_token cookie.
package http
