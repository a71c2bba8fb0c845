package engine

// CountingSystem abstracts the card-counting system the trainer tracks.
// The engine only needs the per-card tag; concrete systems live in the
// counting package so new systems can be added without touching the engine.
type CountingSystem interface {
	Name() string
	IsBalanced() bool
	TagFor(c Card) int
}
