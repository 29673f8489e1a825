package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env-default:"info"`
	Redis     Redis     `yaml:"redis"`
	Generator Generator `yaml:"generator"`
	Quiz      Quiz      `yaml:"quiz"`
	Game      Game      `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Generator struct {
	TimeoutSeconds int `yaml:"timeout-seconds" env-default:"5"`
}

type Quiz struct {
	QuestionCount int `yaml:"question-count" env-default:"10"`
}

type Game struct {
	DefaultDifficulty string `yaml:"default-difficulty" env-default:"medium"`
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
