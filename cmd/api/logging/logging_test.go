package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/bookshelf/cmd/api/logging"
	"github.com/matryer/is"
)

func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("drops records below the level", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer

		logger := logging.New(&buf, "warn")
		logger.Info("hidden")
		logger.Warn("shown", "isbn13", "9780000000001")

		out := buf.String()
		is.True(!strings.Contains(out, "hidden"))
		is.True(strings.Contains(out, `"msg":"shown"`))
		is.True(strings.Contains(out, `"isbn13":"9780000000001"`))
	})

	t.Run("unknown levels fall back to info", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer

		logger := logging.New(&buf, "loud")
		logger.Debug("hidden")
		logger.Info("shown")

		is.True(!strings.Contains(buf.String(), "hidden"))
		is.True(strings.Contains(buf.String(), "shown"))
	})
}
