package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"xdao.co/tokenreg/account"
)

// tokenregd config.toml key mapping to daemon settings.
type fileConfig struct {
	Listen          string   `toml:"listen"`
	Backend         string   `toml:"backend"`
	Admin           string   `toml:"admin"`
	TemplateURI     string   `toml:"template_uri"`
	PredecessorAddr string   `toml:"predecessor_addr"`
	SharedProxies   []string `toml:"shared_proxies"`
}

type serviceConfig struct {
	Listen          string
	Backend         string
	Admin           account.Account
	TemplateURI     string
	PredecessorAddr string
	SharedProxies   []account.Account
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		Listen:  "127.0.0.1:7788",
		Backend: "mem",
	}
}

// loadServiceConfig overlays the TOML file at path on top of cfg. Keys
// absent from the file leave the incoming values untouched.
func loadServiceConfig(path string, cfg serviceConfig) (serviceConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load tokenregd config: %w", err)
	}

	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("backend") {
		cfg.Backend = strings.TrimSpace(raw.Backend)
	}
	if meta.IsDefined("admin") {
		a, err := account.Parse(strings.TrimSpace(raw.Admin))
		if err != nil {
			return serviceConfig{}, fmt.Errorf("load tokenregd config: admin: %w", err)
		}
		cfg.Admin = a
	}
	if meta.IsDefined("template_uri") {
		cfg.TemplateURI = strings.TrimSpace(raw.TemplateURI)
	}
	if meta.IsDefined("predecessor_addr") {
		cfg.PredecessorAddr = strings.TrimSpace(raw.PredecessorAddr)
	}
	if meta.IsDefined("shared_proxies") {
		proxies := make([]account.Account, 0, len(raw.SharedProxies))
		for _, s := range raw.SharedProxies {
			a, err := account.Parse(strings.TrimSpace(s))
			if err != nil {
				return serviceConfig{}, fmt.Errorf("load tokenregd config: shared_proxies: %w", err)
			}
			proxies = append(proxies, a)
		}
		cfg.SharedProxies = proxies
	}
	return cfg, nil
}
