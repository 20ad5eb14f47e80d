// Package models defines the records the bill splitter persists.
//
// The settlement engine in internal/calculator never sees these types: the
// service layer converts request messages into engine input, runs the engine,
// and stores the outcome as a Bill.
//
// # Identities
//
// People are identified by plain usernames. A bill's creator, a payment's
// username, a group's owner and an invitation's sender and receiver are all
// usernames supplied by the caller.
//
// # Relationships
//
// Records refer to each other by ID strings rather than pointers:
//   - Bill.GroupID references a Group
//   - Invitation.GroupID references a Group
//   - Payments are embedded in their Bill and only ever appended
package models
