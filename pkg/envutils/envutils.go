package envutils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

func Env(variableName, defaultValue string) string {
	if variable := os.Getenv(variableName); variable != "" {
		log.Printf("[%s]: %s", variableName, variable)
		return variable
	}
	log.Printf("[%s_DEFAULT]: %s", variableName, defaultValue)
	return defaultValue
}

// Secret behaves like Env but never prints the value.
func Secret(variableName, defaultValue string) string {
	if variable := os.Getenv(variableName); variable != "" {
		log.Printf("[%s]: ***", variableName)
		return variable
	}
	log.Printf("[%s_DEFAULT]: <empty>", variableName)
	return defaultValue
}

func EnvInt(variableName string, defaultValue int) int {
	raw := Env(variableName, strconv.Itoa(defaultValue))
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[%s]: %q is not a number, using %d", variableName, raw, defaultValue)
		return defaultValue
	}
	return value
}

func EnvDuration(variableName string, defaultValue time.Duration) time.Duration {
	raw := Env(variableName, defaultValue.String())
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("[%s]: %q is not a duration, using %s", variableName, raw, defaultValue)
		return defaultValue
	}
	return value
}

func EnvBool(variableName string, defaultValue bool) bool {
	raw := strings.ToLower(Env(variableName, strconv.FormatBool(defaultValue)))
	switch raw {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
