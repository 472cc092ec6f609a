package sidebet

import (
	"fmt"

	"blackjack-server/pkg/blackjack"
)

var rules = map[string]blackjack.SideBetRule{
	"super7": super7{},
}

// Get returns a side-bet rule by name. An empty name means the table
// plays without a side bet and returns a nil rule.
func Get(name string) (blackjack.SideBetRule, error) {
	if name == "" {
		return nil, nil
	}

	rule, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("no side-bet rule with name: %s", name)
	}

	return rule, nil
}
