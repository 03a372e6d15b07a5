package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	BusSystem  = "system"
	BusSession = "session"

	envPrefix = "OFONO_BLOCKLET"
)

type Config struct {
	Bus     string `validate:"oneof=system session"`
	LogFile string
	Verbose bool
}

var C = new(Config)

var (
	ErrInvalidBus = errors.New("bus must be either system or session")
)

// LoadEnv fills C with defaults taken from OFONO_BLOCKLET_* environment variables.
// Flags parsed afterwards override them.
func LoadEnv() {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("BUS", BusSystem)

	C.Bus = v.GetString("BUS")
	C.LogFile = v.GetString("LOG_FILE")
	C.Verbose = v.GetBool("VERBOSE")
}

func (c *Config) IsValid() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "Bus" {
					return fmt.Errorf("%w: %q", ErrInvalidBus, c.Bus)
				}
			}
		}
		return err
	}
	return nil
}
