// Package rider contains the Rider aggregate: availability state and the set
// of orders a rider currently owns. Assignment and release go through the
// aggregate so its invariants hold regardless of which use case drives them.
package rider
