package pg

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

type dsnBuilder func(cfg Config) (string, error)

var dsnBuilders = map[Kind]dsnBuilder{
	KindURL:    urlDSN,
	KindParams: paramsDSN,
}

// DSN resolves the connection string for cfg.Kind. An empty kind means KindURL.
func DSN(cfg Config) (string, error) {
	kind := cfg.Kind
	if kind == "" {
		kind = KindURL
	}
	build, ok := dsnBuilders[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return build(cfg)
}

func urlDSN(cfg Config) (string, error) {
	if cfg.ConnectionString == "" {
		return "", ErrEmptyConnectionString
	}
	return cfg.ConnectionString, nil
}

func paramsDSN(cfg Config) (string, error) {
	if cfg.Host == "" || cfg.Database == "" {
		return "", ErrIncompleteParams
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	switch {
	case cfg.User != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.User, cfg.Password)
	case cfg.User != "":
		u.User = url.User(cfg.User)
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String(), nil
}
