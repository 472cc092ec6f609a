package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Bold", "Quick", "Quiet", "Steady", "Sly", "Gracious", "Happy", "Patient", "Daring",
	"Red", "Blue", "Green", "Golden", "Silver", "Smiling", "Counting", "Bluffing", "Card", "High",
	"Low", "Soft", "Hard", "Double", "Split",
}

var nouns = []string{
	"Ace", "Deuce", "Jack", "Queen", "King", "Joker", "Charlie", "Shark", "Whale", "Grinder",
	"Dealer", "Croupier", "Gambler", "Shoe", "Cutter", "Router", "Pit", "Chip", "Stack", "Shark",
	"Spade", "Heart", "Club", "Diamond",
}

// GetRandomName returns a random name by combining an adjective with a noun
func GetRandomName() string {
	adjectivesIndex := rand.Intn(len(adjectives))
	nounsIndex := rand.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
