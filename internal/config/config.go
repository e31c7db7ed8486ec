package config

import (
	"github.com/commercekit/account/validate"
	"github.com/spf13/viper"
)

// Environment of the service. Note that certain features will be disabled in Production.
type Environment string

var (
	Development Environment = "Development"
	Production  Environment = "Production"
)

// Configuration is just that.
type Configuration struct {
	// Name of the service.
	Name string `validate:"required"`
	// Environment of the service.
	//
	// Default: Development
	Environment Environment `validate:"required,oneof='Development' 'Production'"`

	// Essentials
	//

	Account    Account
	Credential Credential
	Database   Database
	Logger     Logger
}

// New retrieves configuration from the given file,
// overrides any default values, and validates the result.
func New(filename string, filetype string, filepath string) (*Configuration, error) {
	conf := Configuration{
		Environment: Development,

		Account: Account{
			SoftDelete:     SoftDeleteParanoid,
			ScrambleDomain: "example.net",
		},
		Credential: Credential{
			MinLength:    8,
			MinimumScore: 0,
			Argon: Argon{
				Memory:      64 * 1024,
				Iterations:  2,
				Parallelism: 2,
				SaltLength:  16,
				KeyLength:   32,
			},
		},
		Logger: Logger{
			Level: "info",
		},
	}

	viper.SetConfigName(filename)
	viper.SetConfigType(filetype)
	viper.AddConfigPath(filepath)
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, err
	}
	if err := validate.Check(conf); err != nil {
		return nil, err
	}
	return &conf, nil
}
