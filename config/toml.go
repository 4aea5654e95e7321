package config

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/viper"
)

var configTemplate *template.Template

const DefaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

DataDir = "{{ .DataDir }}"

NodeURL = "{{ .NodeURL }}"
Autoreconnect = {{ .Autoreconnect }}
FeeSymbol = "{{ .FeeSymbol }}"

[log]

Level = "{{ .Log.Level }}"
MaxAgeDays = {{ .Log.MaxAgeDays }}

`

// WriteConfigFile renders config into configDirPath/configName as TOML.
func WriteConfigFile(configDirPath string, configName string, config Config, mode os.FileMode) error {
	var buffer bytes.Buffer
	var err error

	if configTemplate, err = template.New("configFileTemplate").Parse(DefaultConfigTemplate); err != nil {
		return err
	}

	if err = configTemplate.Execute(&buffer, config); err != nil {
		return err
	}
	configPath := filepath.Join(configDirPath, configName)
	return os.WriteFile(configPath, buffer.Bytes(), mode)
}

// Load reads config.toml from configDirPath, falling back to defaults when
// the file is absent.
func Load(configDirPath string) (Config, error) {
	cfg := DefaultConfig
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDirPath)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
