// Package requestid extracts the correlation id the Hookbase API attaches to
// every response.
//
// The id is surfaced on API errors and in retry log records so a failing call
// can be matched against server-side logs. Values that are empty, overlong or
// contain characters outside [a-zA-Z0-9_.:-] are discarded rather than echoed,
// which keeps log lines free of injected content.
package requestid
