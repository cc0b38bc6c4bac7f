package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// source holds raw settings keyed by lower-cased env names, e.g. "app_http_addr".
type source struct {
	k *koanf.Koanf
}

func newSource(path string) (*source, error) {
	k := koanf.New(".")

	path = strings.TrimSpace(path)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	return &source{k: k}, nil
}

func (s *source) get(key, fallback string) string {
	path := strings.ToLower(key)
	if !s.k.Exists(path) {
		return fallback
	}
	v := s.k.String(path)
	if v == "" {
		return fallback
	}
	return v
}

func (s *source) getInt(key string, fallback int) (int, error) {
	return strconv.Atoi(s.get(key, strconv.Itoa(fallback)))
}
