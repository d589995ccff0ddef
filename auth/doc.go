/*
Package auth verifies the HMAC-signed JWTs that API clients present.

A Service reads a token from the "Authorization: Bearer" header or,
failing that, from a "jwt" query param, and decodes it into Claims.
middleware.RequireBearer uses a Service to gate routes declared as authenticated
for clients that carry no session cookie.
*/
package auth
