// Package credentials resolves the account SID and auth token written to a
// new project's .env file. Values come from command-line flags, the
// TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN environment variables, or an
// interactive prompt, in that order of preference.
package credentials
