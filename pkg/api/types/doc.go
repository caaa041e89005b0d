// Package types holds the wire records exchanged with the relay backend.
//
// Records mirror the backend JSON one-to-one. Server-computed fields such as
// usage counters and costs are snapshots and are never modified client-side;
// the only fields a client mutates are the status enumerations, and only
// through explicit API calls.
package types
