package mux

import (
	"time"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"

	appconfig "blackjack-server/internal/config"
)

type recaptcha interface {
	// Verify will verify the token is valid
	Verify(token string) error
}

// noopRecaptcha accepts every token. Used when no secret is configured.
type noopRecaptcha struct{}

func (n noopRecaptcha) Verify(token string) error {
	return nil
}

func newRecaptcha() recaptcha {
	secret := appconfig.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Warn("recaptcha secret not set, player signup is unprotected")
		return noopRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}
