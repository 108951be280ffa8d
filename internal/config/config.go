// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/skyhookcloud/stackadmin/internal/core"
	"github.com/spf13/viper"
)

// Config holds the global configuration for the application.
type Config struct {
	Log   logx.LoggingConfig `yaml:"log" json:"log"`
	Auth  AuthConfig         `yaml:"auth" json:"auth"`
	Cloud CloudConfig        `yaml:"cloud" json:"cloud"`
}

// AuthConfig represents the `auth` configuration block: the credentials used
// to open the control-plane session. Every field can also come from the
// conventional OS_* environment variables.
type AuthConfig struct {
	AuthURL         string `yaml:"authUrl" json:"authUrl"`
	Username        string `yaml:"username" json:"username"`
	Password        string `yaml:"password" json:"password"`
	UserDomainID    string `yaml:"userDomainId" json:"userDomainId"`
	ProjectName     string `yaml:"projectName" json:"projectName"`
	ProjectDomainID string `yaml:"projectDomainId" json:"projectDomainId"`
}

// Validate checks that the fields needed to authenticate are present.
func (a AuthConfig) Validate() error {
	if a.AuthURL == "" {
		return errorx.IllegalArgument.New("auth URL is required (authUrl or OS_AUTH_URL)")
	}
	if a.Username == "" {
		return errorx.IllegalArgument.New("username is required (username or OS_USERNAME)")
	}
	if a.Password == "" {
		return errorx.IllegalArgument.New("password is required (password or OS_PASSWORD)")
	}
	return nil
}

// CloudConfig represents the `cloud` configuration block: the well-known
// names the reconcilers resolve against.
type CloudConfig struct {
	Domain          string `yaml:"domain" json:"domain"`
	RoleName        string `yaml:"roleName" json:"roleName"`
	ServiceProject  string `yaml:"serviceProject" json:"serviceProject"`
	ExternalNetwork string `yaml:"externalNetwork" json:"externalNetwork"`
	MappingName     string `yaml:"mappingName" json:"mappingName"`
	BackupDir       string `yaml:"backupDir" json:"backupDir"`
}

var globalConfig = defaultConfig()

func defaultConfig() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Warn",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		Cloud: CloudConfig{
			Domain:          core.DefaultDomain,
			RoleName:        core.MemberRole,
			ServiceProject:  core.DefaultServiceProject,
			ExternalNetwork: core.DefaultExternalNetwork,
			MappingName:     core.DefaultMappingName,
			BackupDir:       core.DefaultBackupDir,
		},
	}
}

// Initialize loads the configuration from the specified file. With an empty
// path only the defaults and OS_* environment variables apply.
func Initialize(path string) error {
	globalConfig = defaultConfig()
	viper.Reset()
	viper.SetEnvPrefix("STACKADMIN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}
		if err := viper.Unmarshal(&globalConfig); err != nil {
			return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
				WithProperty(errorx.PropertyPayload(), path)
		}
	}

	applyEnvOverrides(&globalConfig)
	return nil
}

// applyEnvOverrides layers the conventional OS_* variables over whatever the
// file supplied. A variable only wins when the file left the field empty.
func applyEnvOverrides(c *Config) {
	for _, bind := range []struct {
		field *string
		env   string
	}{
		{&c.Auth.AuthURL, "OS_AUTH_URL"},
		{&c.Auth.Username, "OS_USERNAME"},
		{&c.Auth.Password, "OS_PASSWORD"},
		{&c.Auth.UserDomainID, "OS_USER_DOMAIN_ID"},
		{&c.Auth.ProjectName, "OS_PROJECT_NAME"},
		{&c.Auth.ProjectDomainID, "OS_PROJECT_DOMAIN_ID"},
	} {
		if *bind.field == "" {
			if v := os.Getenv(bind.env); v != "" {
				*bind.field = v
			}
		}
	}
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

func Set(c *Config) error {
	globalConfig = *c
	return nil
}
