package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to <dataDir>/.tenk/tenk.log. The terminal is
// owned by the UI, so logs never go to stdout. Failures to set up the log
// file degrade to a no-op logger; logging must never take the app down.
func New(dataDir string) *zap.Logger {
	dir := filepath.Join(dataDir, ".tenk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(filepath.Join(dir, "tenk.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(f), zapcore.InfoLevel)
	return zap.New(core)
}
