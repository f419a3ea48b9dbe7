package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of a table layout run.
var ProgressLogger = log.New(os.Stdout, "folayout.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal issue, like columns
// too narrow for their content or invalid property values.
var WarningLogger = log.New(os.Stdout, "folayout.warning: ", log.Lmsgprefix)
