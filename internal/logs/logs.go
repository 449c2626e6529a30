package logs

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New buduje logger: konsola (stdout) i/lub plik, jeśli podano ścieżkę.
func New(logFilePath string, withConsole bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if withConsole {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}

	var fileErr error
	if logFilePath != "" {
		// append + tworzenie jeśli brak
		logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, logFile)
		}
	}

	var writer io.Writer = os.Stderr
	switch len(writers) {
	case 0:
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Caller().
		Logger()

	// Ustaw globalny logger
	log.Logger = logger

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", logFilePath).Msg("Не удалось открыть файл лога, пишу только в консоль")
	}
	return logger
}
