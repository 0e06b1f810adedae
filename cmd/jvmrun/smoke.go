package main

import (
	"os"

	"go.uber.org/zap"

	jio "github.com/wippyai/jvm-bridge/java/io"
	"github.com/wippyai/jvm-bridge/java/lang"
	"github.com/wippyai/jvm-bridge/jvm"
)

// smoke creates a temporary directory, hands it to java.io.File, schedules
// it for deletion when the VM exits and reports whether the VM sees it.
func smoke() (bool, error) {
	if v, ok, err := lang.Property("java.version"); err == nil && ok {
		jvm.Logger().Info("smoke test", zap.String("java.version", v))
	}

	dir, err := os.MkdirTemp("", "jvmrun-")
	if err != nil {
		return false, err
	}
	jvm.Logger().Debug("smoke directory", zap.String("path", dir))

	f, err := jio.NewFile(dir)
	if err != nil {
		return false, err
	}
	defer f.Release()

	if err := f.DeleteOnExit(); err != nil {
		return false, err
	}
	return f.Exists()
}
