package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the standard logrus logger.
// The returned closer releases the log file, if any.
func Setup(params LoggerSetupParams) io.Closer {
	if params.LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		log.SetOutput(os.Stdout)
		log.Debugln("writing logs only to STDOUT")
		return nopCloser{}
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // UTC
		Compress:  true,
	}

	if params.LogToStdout {
		log.SetOutput(io.MultiWriter(os.Stdout, lumberJackLogger))
		log.Debugln("writing logs to file and STDOUT")
	} else {
		log.SetOutput(lumberJackLogger)
	}

	return lumberJackLogger
}

func GetLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	case "info":
		return log.InfoLevel
	case "trace":
		return log.TraceLevel
	case "warn", "warning":
		return log.WarnLevel
	default:
		return log.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
