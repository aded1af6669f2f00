package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/RowanDark/devkit/internal/config"
)

func (a *app) runConfig(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: devkit config print|env")
		return 2
	}
	switch args[0] {
	case "print":
		if err := toml.NewEncoder(a.stdout).Encode(a.cfg); err != nil {
			return a.fail("config", err)
		}
		return 0
	case "env":
		for _, name := range config.EnvNames() {
			value, set := os.LookupEnv(name)
			if !set || value == "" {
				fmt.Fprintln(a.stdout, name)
				continue
			}
			fmt.Fprintf(a.stdout, "%s=%s\n", name, value)
		}
		return 0
	default:
		fmt.Fprintf(a.stderr, "unknown config command: %s\n", args[0])
		return 2
	}
}
