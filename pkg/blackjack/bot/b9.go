package bot

import (
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack"
)

// newB9 returns a bot playing a cut-down basic strategy: draw to
// seventeen against a strong dealer card, but stand from twelve up when
// the dealer shows a bust card (two through six)
func newB9(logger logrus.FieldLogger) blackjack.Bot {
	return newTableBot(logger, "b9", func(value, dealerUp int) bool {
		if dealerUp >= 2 && dealerUp <= 6 {
			return value < 12
		}

		return value < 17
	})
}
