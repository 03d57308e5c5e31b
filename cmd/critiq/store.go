package main

import (
	"github.com/spf13/viper"

	"github.com/critiq-cli/critiq/internal/config"
	"github.com/critiq-cli/critiq/internal/storage"
)

// openStore opens the local key/value store at the configured path.
func openStore() (*storage.Store, error) {
	path := viper.GetString("store.path")
	if path == "" {
		path = config.DefaultStorePath()
	}
	return storage.Open(config.ExpandPath(path))
}
