package rng

// Generator supplies the randomness for shoe shuffles
type Generator interface {
	// Intn returns a random number in [0, n)
	Intn(n int) int
}
