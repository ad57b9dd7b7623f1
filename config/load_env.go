package config

import (
	"github.com/rotisserie/eris"
	"github.com/subosito/gotenv"
)

const ENV_DIR = "config/envs"

// LoadEnv loads config/envs/.env.<env> into the process environment. Values
// already set in the environment win.
func LoadEnv(env string) error {
	envFile := ENV_DIR + "/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		return eris.Wrapf(err, "config: load %s", envFile)
	}
	return nil
}
