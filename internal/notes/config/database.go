package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// PostgresConfig содержит настройки подключения к базе данных заметок.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"NOTES_POSTGRES_HOST" env-default:"0.0.0.0"`
	Port     int    `yaml:"port" env:"NOTES_POSTGRES_PORT" env-default:"5433"`
	User     string `yaml:"user" env:"NOTES_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"NOTES_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"NOTES_POSTGRES_DB" env-default:"notes"`
	SSLMode  string `yaml:"ssl_mode" env:"NOTES_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"NOTES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"NOTES_POSTGRES_MAX_CONN" env-default:"10"`
}

// dsnQuoter экранирует значения в формате key=value libpq.
var dsnQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// GetDSN возвращает строку подключения key=value для пула pgx.
// Значения берутся в кавычки, поэтому пароль может содержать пробелы и кавычки.
func (p *PostgresConfig) GetDSN() string {
	pairs := []struct{ key, value string }{
		{"host", p.Host},
		{"port", strconv.Itoa(p.Port)},
		{"user", p.User},
		{"password", p.Password},
		{"dbname", p.Database},
		{"sslmode", p.sslMode()},
	}

	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		parts = append(parts, kv.key+"='"+dsnQuoter.Replace(kv.value)+"'")
	}
	return strings.Join(parts, " ")
}

// GetConnectionURL возвращает URL подключения для golang-migrate.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": {p.sslMode()}}.Encode(),
	}
	return u.String()
}

func (p *PostgresConfig) sslMode() string {
	if p.SSLMode == "" {
		return "disable"
	}
	return p.SSLMode
}
