/*
 * Copyright (c) 2025, OpenAdmissions (https://openadmissions.org).
 *
 * OpenAdmissions licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"os"
	"path"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type WebhookConfig struct {
	// Shared secret for the HMAC-SHA256 signature over the raw request body.
	SigningSecret string `yaml:"signing_secret"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Secret used to verify Bearer tokens on the admin API.
	TokenSecret string `yaml:"token_secret"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AttachmentConfig struct {
	// Directory fetched attachment bytes are persisted under.
	Directory string `yaml:"directory"`
	// Per-fetch timeout in seconds.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	// Maximum accepted attachment size in bytes.
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
	// Optional content-type allow list; empty means accept everything.
	AllowedContentTypes []string `yaml:"allowed_content_types"`
}

type CacheConfig struct {
	// TTL in seconds for the division and mapping rule caches.
	RuleTTLSeconds int `yaml:"rule_ttl_seconds"`
}

type Config struct {
	Addr        AddrConfig       `yaml:"addr"`
	Log         LogConfig        `yaml:"log"`
	Webhook     WebhookConfig    `yaml:"webhook"`
	Admin       AdminConfig      `yaml:"admin"`
	DataSource  DataSourceConfig `yaml:"datasource"`
	Attachments AttachmentConfig `yaml:"attachments"`
	Cache       CacheConfig      `yaml:"cache"`
}

// LoadConfig reads the deployment YAML relative to the service home directory.
func LoadConfig(intakeHome, configFile string) (*Config, error) {

	data, err := os.ReadFile(path.Join(intakeHome, configFile))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read deployment configuration")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse deployment configuration")
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "info"
	}
	if cfg.Attachments.FetchTimeoutSeconds <= 0 {
		cfg.Attachments.FetchTimeoutSeconds = 30
	}
	if cfg.Attachments.MaxSizeBytes <= 0 {
		cfg.Attachments.MaxSizeBytes = 25 << 20
	}
	if cfg.Attachments.Directory == "" {
		cfg.Attachments.Directory = "attachments"
	}
	if cfg.Cache.RuleTTLSeconds <= 0 {
		cfg.Cache.RuleTTLSeconds = 60
	}
}
