package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa"
	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/prime"
)

const tomlConfigVersion = "1.0.0"

type cbrsaConfig struct {
	Version string       `toml:"version"`
	Keygen  keygenConfig `toml:"keygen"`
	Log     logConfig    `toml:"log"`
}

type keygenConfig struct {
	Bits                int `toml:"bits"`
	PrimeRounds         int `toml:"prime_rounds"`
	MaxPrimeAttempts    int `toml:"max_prime_attempts"`
	MaxExponentAttempts int `toml:"max_exponent_attempts"`
}

type logConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

const (
	logFormatConsole = "console"
	logFormatJSON    = "json"
)

var defaultConfig = cbrsaConfig{
	Version: tomlConfigVersion,
	Keygen: keygenConfig{
		Bits:                cbrsa.DefaultBits,
		PrimeRounds:         prime.DefaultRounds,
		MaxPrimeAttempts:    0,
		MaxExponentAttempts: 0,
	},
	Log: logConfig{
		Level:  "warn",
		Format: logFormatConsole,
	},
}

func getDefaultConfigCopy() cbrsaConfig {
	config := defaultConfig
	return config
}

func (c cbrsaConfig) keyGeneratorConfig() cbrsa.Config {
	return cbrsa.Config{
		PrimeRounds:         c.Keygen.PrimeRounds,
		MaxPrimeAttempts:    c.Keygen.MaxPrimeAttempts,
		MaxExponentAttempts: c.Keygen.MaxExponentAttempts,
	}
}

func validateConfig(config cbrsaConfig) error {
	if config.Keygen.Bits < prime.MinBits {
		return fmt.Errorf("keygen.bits must be at least %d, got %d", prime.MinBits, config.Keygen.Bits)
	}
	if config.Keygen.PrimeRounds < 0 {
		return fmt.Errorf("keygen.prime_rounds must not be negative, got %d", config.Keygen.PrimeRounds)
	}
	if config.Keygen.MaxPrimeAttempts < 0 || config.Keygen.MaxExponentAttempts < 0 {
		return errors.New("keygen attempt limits must not be negative")
	}
	if err := checkStringAccepted("log.level", config.Log.Level, []string{"debug", "info", "warn", "error"}); err != nil {
		return err
	}
	return checkStringAccepted("log.format", config.Log.Format, []string{logFormatConsole, logFormatJSON})
}

func checkStringAccepted(field string, val string, accepts []string) error {
	for _, accept := range accepts {
		if val == accept {
			return nil
		}
	}
	return fmt.Errorf("unknown value for %s: %s (%v)", field, val, strings.Join(accepts, ", "))
}

func loadConfig(file string) (cbrsaConfig, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return cbrsaConfig{}, errors.Wrap(err, "read config")
	}

	config := getDefaultConfigCopy()
	if err := toml.Unmarshal(b, &config); err != nil {
		return cbrsaConfig{}, errors.Wrapf(err, "parse config %s", file)
	}
	return config, nil
}

func marshalConfig(config cbrsaConfig) ([]byte, error) {
	b, err := toml.Marshal(config)
	return b, errors.Wrap(err, "encode config")
}

func writeConfigToFile(config cbrsaConfig, file string) error {
	b, err := marshalConfig(config)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(file, b, 0644), "write config")
}
