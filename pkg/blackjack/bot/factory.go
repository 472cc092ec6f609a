package bot

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack"
)

// Factory builds a bot ready to be seated
type Factory func(logger logrus.FieldLogger) blackjack.Bot

var factories = map[string]Factory{
	"b9": newB9,
	"n6": newN6,
}

// Get returns a new bot by its logical name
func Get(name string, logger logrus.FieldLogger) (blackjack.Bot, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no bot with name: %s", name)
	}

	return factory(logger), nil
}

// Resolver adapts Get for the dealer's seat-filling hook
func Resolver(logger logrus.FieldLogger) blackjack.BotResolver {
	return func(name string) (blackjack.Bot, error) {
		return Get(name, logger)
	}
}
