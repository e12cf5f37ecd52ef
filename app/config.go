// Package app builds a configured bot from YAML documents and environment variables.
package app

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jfk9w-go/flu"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the bot instance configuration.
type Config struct {
	Telegram struct {
		Token               string       `yaml:"token"`
		Endpoint            string       `yaml:"endpoint,omitempty"`
		Username            string       `yaml:"username,omitempty"`
		ParseMode           string       `yaml:"parsemode,omitempty"`
		ProtectContent      bool         `yaml:"protectcontent,omitempty"`
		DisableNotification bool         `yaml:"disablenotification,omitempty"`
		RequestTimeout      flu.Duration `yaml:"requesttimeout,omitempty"`
	} `yaml:"telegram"`

	Polling struct {
		Timeout        flu.Duration `yaml:"timeout,omitempty"`
		Limit          int          `yaml:"limit,omitempty"`
		AllowedUpdates []string     `yaml:"allowedupdates,omitempty"`
		ErrorDelay     flu.Duration `yaml:"errordelay,omitempty"`
	} `yaml:"polling"`

	Retry struct {
		MaxRetries uint64       `yaml:"maxretries,omitempty"`
		MaxElapsed flu.Duration `yaml:"maxelapsed,omitempty"`
	} `yaml:"retry"`

	Storage struct {
		Driver   string       `yaml:"driver,omitempty"`
		DSN      string       `yaml:"dsn,omitempty"`
		Address  string       `yaml:"address,omitempty"`
		Password string       `yaml:"password,omitempty"`
		DB       int          `yaml:"db,omitempty"`
		Prefix   string       `yaml:"prefix,omitempty"`
		TTL      flu.Duration `yaml:"ttl,omitempty"`
	} `yaml:"storage"`

	Metrics struct {
		Enabled bool   `yaml:"enabled,omitempty"`
		Prefix  string `yaml:"prefix,omitempty"`
	} `yaml:"metrics"`

	Log LogConfig `yaml:"log"`
}

// LoadDotEnv loads environment variables from the files. Missing files are skipped.
// Variables already set in the environment are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
	}

	return nil
}

// ReadConfig collects the configuration and decodes it.
func ReadConfig(environPrefix string, inputs ...io.Reader) (*Config, error) {
	data, err := CollectConfig(environPrefix, inputs...)
	if err != nil {
		return nil, err
	}

	config := new(Config)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	return config, nil
}

// CollectConfig merges YAML documents and environment variables starting with environPrefix
// into a single YAML document. Environment references in documents are expanded.
// PREFIX_A_B=value sets the "b" key of the "a" object.
func CollectConfig(environPrefix string, inputs ...io.Reader) ([]byte, error) {
	global := make(map[string]interface{})
	for i, input := range inputs {
		data, err := io.ReadAll(input)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %d", i)
		}

		config := make(map[string]interface{})
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
			return nil, errors.Wrapf(err, "read expanded config %d", i)
		}

		if global, err = merge(global, config); err != nil {
			return nil, err
		}
	}

	global, err := merge(global, environ(environPrefix))
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(global)
	return data, errors.Wrap(err, "encode global config")
}

func environ(prefix string) map[string]interface{} {
	m := make(map[string]interface{})
	if prefix == "" {
		return m
	}

	for _, line := range os.Environ() {
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		line = line[len(prefix):]
		equals := strings.Index(line, "=")
		key, value := line[:equals], line[equals+1:]
		keyTokens := strings.Split(key, "_")
		lastIdx := len(keyTokens) - 1
		entry := m
		for i, keyToken := range keyTokens {
			if keyToken == "" {
				break
			}

			keyToken = strings.ToLower(keyToken)
			if i == lastIdx {
				if ev, ok := entry[keyToken]; ok {
					if _, ok := ev.(map[string]interface{}); ok {
						logrus.Warnf("discarding env var %s due to type incompatibility", key)
						continue
					}
				}

				entry[keyToken] = parseValue(value)
			} else {
				var mev map[string]interface{}
				if ev, ok := entry[keyToken]; ok {
					if mev, ok = ev.(map[string]interface{}); !ok {
						logrus.Warnf("overriding parent as object for env var %s", key)
						mev = make(map[string]interface{})
						entry[keyToken] = mev
					}
				} else {
					mev = make(map[string]interface{})
					entry[keyToken] = mev
				}

				entry = mev
			}
		}
	}

	return m
}

func parseValue(value string) interface{} {
	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v
	} else if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v
	} else if v, err := strconv.ParseBool(value); err == nil {
		return v
	}

	return value
}

func merge(a, b map[string]interface{}) (map[string]interface{}, error) {
	for k, v := range b {
		if av, ok := a[k]; !ok {
			a[k] = v
			continue
		} else if mav, ok := av.(map[string]interface{}); ok {
			if mv, ok := v.(map[string]interface{}); ok {
				merged, err := merge(mav, mv)
				if err != nil {
					return nil, err
				}

				a[k] = merged
				continue
			}
		} else if _, ok := v.(map[string]interface{}); !ok {
			a[k] = v
			continue
		}

		return nil, errors.Errorf("configuration keys %s must have the same type", k)
	}

	return a, nil
}
