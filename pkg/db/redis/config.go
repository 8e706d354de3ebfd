package redis

import (
	"strconv"
	"time"
)

// Значения по умолчанию для подключения к Redis.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPoolSize = 10
	DefaultTimeout  = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// Address возвращает адрес сервера в виде host:port.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
