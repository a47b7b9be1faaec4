package payments

import "github.com/pageforge/pageforge-backend/pkg/env"

type PaymentConfig struct {
	apiKey         string
	webhookKey     string
	returnURL      string
	setupPriceID   string
	monthlyPriceID string
}

func NewPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		apiKey:         env.MustGetEnv("STRIPE_KEY"),
		webhookKey:     env.MustGetEnv("STRIPE_WEBHOOK"),
		returnURL:      env.GetEnv("STRIPE_RETURN_URL", "http://localhost:3000"),
		setupPriceID:   env.MustGetEnv("STRIPE_SETUP_PRICE"),
		monthlyPriceID: env.MustGetEnv("STRIPE_MONTHLY_PRICE"),
	}
}
