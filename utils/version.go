package utils

import (
	"fmt"
)

const (
	Version = "0.3"
)

// VersionString identifies the engine in traces and CLI output.
var VersionString = fmt.Sprintf("Go-FOLayout %s", Version)
