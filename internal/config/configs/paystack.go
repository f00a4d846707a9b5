package configs

import "time"

// Paystack configures the payment gateway client and webhook verification.
type Paystack struct {
	BaseURL     string `env:"BASE_URL" envDefault:"https://api.paystack.co"`
	SecretKey   string `env:"SECRET_KEY"`
	CallbackURL string `env:"CALLBACK_URL"`
	// Timeout bounds every gateway call.
	Timeout         time.Duration `env:"TIMEOUT" envDefault:"15s"`
	SignatureHeader string        `env:"SIGNATURE_HEADER" envDefault:"X-Paystack-Signature"`
}
