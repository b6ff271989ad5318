// Package queries contains the read side of the CQRS split. Query handlers
// go straight to the database with raw SQL and return plain response structs;
// they never load aggregates or run domain logic.
package queries
