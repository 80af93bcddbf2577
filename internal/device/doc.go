// Package device implements the session layer for Uwatec Smart family dive
// computers: the command/response engine, the two-stage handshake, the
// device info queries, and the chunked memory dump.
//
// A Session owns its transport for its whole lifetime. All operations are
// synchronous and blocking, commands are strictly request-then-reply with
// no pipelining, and nothing is retried here; retry policy belongs to the
// caller, who can distinguish transport conditions (ErrIO, ErrTimeout)
// from protocol and data errors that will not improve on retry.
//
// The session keeps a fingerprint timestamp between dumps. Setting it to
// the fingerprint of the newest downloaded dive makes the next dump
// incremental: the device only sends dives it logged after that one.
package device
