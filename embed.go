package pubtools

import "embed"

// defaultConfigFS holds default_config.yaml, the settings used when no
// config file is given.
//
//go:embed default_config.yaml
var defaultConfigFS embed.FS
