// Package otp issues and checks the six digit codes emailed as a second
// sign-in factor.
//
// A CodeStore holds at most one live code per user. Storing a code replaces
// any earlier one, a matching Validate consumes it, and an expired code is
// never accepted. Two drivers exist: MemoryStore for a single process and
// RedisStore when several instances share challenges.
package otp
