package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Pinata    PinataConfig
	Namestone NamestoneConfig
	CORS      CORSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=webpage_publisher"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// PinataConfig holds artifact-store (IPFS pinning) settings.
type PinataConfig struct {
	UploadURL  string `env:"PINATA_URL,         default=https://api.pinata.cloud/pinning/pinFileToIPFS"`
	APIBaseURL string `env:"PINATA_API_URL,     default=https://api.pinata.cloud"`
	AuthToken  string `env:"PINATA_AUTH_TOKEN"`
	GatewayURL string `env:"PINATA_GATEWAY_URL, default=https://gateway.pinata.cloud"`
}

// NamestoneConfig holds subdomain-registrar settings: endpoint, key, and the
// fixed parent domain and operator address every binding is created under.
type NamestoneConfig struct {
	APIURL  string `env:"NAMESTONE_API_URL"`
	APIKey  string `env:"NAMESTONE_API_KEY"`
	Address string `env:"ADDRESS"`
	Domain  string `env:"DOMAIN, default=siher.eth"`
}

// CORSConfig lists exact allowed origins plus domain suffixes matched
// against published site names.
type CORSConfig struct {
	Origins  []string `env:"CORS_ORIGINS,  default=http://localhost:3000"`
	Suffixes []string `env:"CORS_SUFFIXES, default=.siher.eth.link,.siher.eth.limo"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
