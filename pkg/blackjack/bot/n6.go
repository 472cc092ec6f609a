package bot

import (
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack"
)

// newN6 returns a conservative bot that never risks a bust: it draws to
// twelve and stands there regardless of the dealer's card
func newN6(logger logrus.FieldLogger) blackjack.Bot {
	return newTableBot(logger, "n6", func(value, _ int) bool {
		return value < 12
	})
}
