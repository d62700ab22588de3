package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env-default:"9091"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env-default:"twisttactoe.db"`
	JWTSecretKey      string `yaml:"jwt-secret-key"`
	Game              Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Game holds the defaults every new match starts from. Players change
// them per match through the config gate before the first game.
type Game struct {
	BoardWidth    int  `yaml:"board-width" env-default:"3"`
	BoardHeight   int  `yaml:"board-height" env-default:"3"`
	WinLength     int  `yaml:"win-length" env-default:"3"`
	LimitedPieces bool `yaml:"limited-pieces" env-default:"false"`
	NumPieces     int  `yaml:"num-pieces" env-default:"3"`
	FifoOrder     bool `yaml:"fifo-order" env-default:"true"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
