package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/constants"
	"github.com/rs/zerolog"
)

// New 本機環境用 console writer，其餘輸出 JSON
// 等級由全域 level 控制，設定檔變動時可以直接調整
func New(env constants.ENV, level string, out io.Writer) (*zerolog.Logger, error) {
	if err := SetLevel(level); err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	if env.IsLocal() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(out).With().
		Timestamp().
		Str("module", constants.ModuleName).
		Logger()
	return &logger, nil
}

func SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
