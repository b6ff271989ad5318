// Package services contains stateless domain services that coordinate across
// aggregates: the authorization gate for transition requests and the
// notification router that fans events out to subject rooms.
package services
