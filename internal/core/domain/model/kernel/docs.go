// Package kernel contains shared value objects used across the domain model.
// These are the building blocks aggregates are composed from; they validate
// on construction and are immutable afterwards.
package kernel
