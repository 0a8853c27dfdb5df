package signature

// Config holds signature settings loaded from the environment.
type Config struct {
	SecretKey string `env:"AUTH_SECRET_KEY,required,notEmpty"`
	Size      int    `env:"AUTH_SIZE" envDefault:"16"`
}

// NewFromConfig creates a Signer from the provided Config.
func NewFromConfig(cfg Config) (*Signer, error) {
	opts := make([]Option, 0, 1)
	if cfg.Size != 0 {
		opts = append(opts, WithSize(cfg.Size))
	}
	return New([]byte(cfg.SecretKey), opts...)
}
