// Package rules holds operator intervention rule types consumed by the
// ranking engine and managed through the admin API.
package rules

// DefaultLambda is the MMR balance used when no operator override is stored.
const DefaultLambda = 0.5

// PositionRule pins a document to a position in the results of one query.
// Position is 0-based; the ranking engine clamps it to the list length at
// apply time. A rule referencing a document outside the current result set
// is a deliberate no-op, since rules are operator-authored ahead of time.
type PositionRule struct {
	DocID    string
	Position int
}
