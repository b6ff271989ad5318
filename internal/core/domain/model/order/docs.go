// Package order contains the Order aggregate and its status state machine.
//
// The transition table in status.go is the single source of truth for which
// status changes are legal; the extra guards (payment completed, rider online)
// live on the aggregate in CheckGuards. Authorization of the requesting actor
// is a separate concern handled by the services package.
package order
