package info

type Config struct {
	CacheSize int // Parsed file cache capacity, 0 disables caching
}

func DefaultConfig() *Config {
	return &Config{
		CacheSize: 256,
	}
}
