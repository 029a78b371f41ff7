// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"os"
	"strings"
)

// FindCmd looks for the value of an environment variable.
// If not set returns a default value.
func FindCmd(envVar string, defaultVal ...string) ([]string, error) {
	cmd, has := os.LookupEnv(envVar)
	if has {
		return strings.Split(cmd, " "), nil
	}
	return defaultVal, nil
}

// Envvar describes one recognized environment variable, used to build the
// CLI's help text.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var envvars []Envvar

// RegEnv registers an environment variable with a default value and a
// description, to be listed by GetEnvvars.
func RegEnv(name, defv, desc string) {
	envvars = append(envvars, Envvar{Name: name, Defv: defv, Desc: desc})
}

// GetEnv returns the value of a registered environment variable, or its
// registered default if unset.
func GetEnv(name string) string {
	if v, has := os.LookupEnv(name); has {
		return v
	}
	for _, ev := range envvars {
		if ev.Name == name {
			return ev.Defv
		}
	}
	return ""
}

// GetEnvvars returns all environment variables registered with RegEnv.
func GetEnvvars() []Envvar {
	return envvars
}
