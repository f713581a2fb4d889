package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"storefront.db"`

	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`
}

type Stripe struct {
	BaseApiURL     string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey      string `env:"SECRET_KEY"`
	PublishableKey string `env:"PUBLISHABLE_KEY"`
	WebhookSecret  string `env:"WEBHOOK_SECRET"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-only-secret"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
}

type Kafka struct {
	Brokers string `env:"BROKERS"` // empty disables analytics events
	Topic   string `env:"TOPIC" envDefault:"storefront-orders"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
