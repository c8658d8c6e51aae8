package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/iov-one/xswap/app"
	"github.com/iov-one/xswap/config"
)

// flConfig registers the flag pointing to the configuration file.
func flConfig(fl *flag.FlagSet) *string {
	return fl.String("config", env("XSWAP_CONFIG", ""),
		"Path to the configuration file. Environment variables prefixed with XSWAP_ take precedence. You can use XSWAP_CONFIG environment variable to set it.")
}

// openApp loads the configuration and opens the application. Logs are
// written to stderr so that the output remains parsable.
func openApp(configPath string) (*app.App, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(os.Stderr, conf.LogLevel)
	if err != nil {
		return nil, err
	}
	return app.New(conf, logger)
}

// printJSON writes a human readable JSON representation of given value.
func printJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	_, err = output.Write(append(pretty, '\n'))
	return err
}

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
