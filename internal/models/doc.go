// Package models defines the core domain models for the skins service.
//
// # Models
//
//   - Course: a course layout; only the hole count matters for scoring
//   - Round: one round played on a course, with its skins settings
//   - Player: a round participant, either a registered user or a guest
//   - Score: a single stroke count for one player on one hole
//   - Par: the par configured for one hole of a round
//   - User: a registered account that can authenticate and view rounds
//
// # Identity
//
// Rounds, courses and players are identified by UUID strings. Users are identified
// by positive integer IDs. A player links to a user through UserID; guests have a
// zero UserID and carry a GuestName instead. Scoring only looks at player IDs, so
// registered users and guests are treated the same.
//
// # Design Principles
//
//  1. Models are plain data: no behavior beyond small display helpers
//  2. Relationships are expressed with ID fields, never pointers
//  3. Timestamps are Unix seconds (int64)
package models
