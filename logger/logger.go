package logger

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os"
	"strconv"
	"time"
)

const (
	LOG_ENABLE          = "HYAKRUN_LOGLEVEL"
	LOG_PATH            = "HYAKRUN_LOGPATH"
	LOG_TIMEOUT         = "HYAKRUN_LOG_TIMEOUT"
	LOG_DEFAULT_TIMEOUT = 24
	DEBUG_LOGGING       = 10
	INFO_LOGGING        = 20
	WARNING_LOGGING     = 30
	ERROR_LOGGING       = 40
	CRITICAL_LOGGING    = 50
)

var (
	Log *log.Logger
)

// The logfile's first line is its creation timestamp; a file older than
// the timeout is started over. Batch jobs come and go, the logfile
// should too.
func init() {
	logPath := "/tmp/"
	if env := os.Getenv(LOG_PATH); len(env) > 0 {
		logPath = env
	}
	timeout := LOG_DEFAULT_TIMEOUT
	if env := os.Getenv(LOG_TIMEOUT); len(env) > 0 {
		if t, err := strconv.Atoi(env); err == nil {
			timeout = t
		}
	}
	logfile := logPath + "hyakrun.log"
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	wrt := io.Writer(os.Stderr)
	f, err := os.OpenFile(logfile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err == nil {
		if stat, serr := f.Stat(); serr == nil && stat.Size() == 0 {
			f.WriteString(time.Now().Format(time.RFC3339) + "\n")
			f.Sync()
		}
		wrt = io.MultiWriter(os.Stderr, f)
	}
	Log = log.New(wrt, "", log.LstdFlags)
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LOG_ENABLE)); err == nil {
		return env
	}
	return CRITICAL_LOGGING
}

func levelName(level int) string {
	switch level {
	case DEBUG_LOGGING:
		return "DEBUG"
	case INFO_LOGGING:
		return "INFO"
	case WARNING_LOGGING:
		return "WARNING"
	case ERROR_LOGGING:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		data, _ := json.MarshalIndent(v, "", " ")
		Log.Printf("%s %s:\n%s\n", levelName(level), name, data)
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	if LogLevel() <= level {
		Log.Printf(levelName(level)+" "+format, a...)
	}
}

func DebugObj(name string, v interface{}) { logObj(DEBUG_LOGGING, name, v) }

func DebugPrintf(format string, a ...interface{}) {
	logPrintf(DEBUG_LOGGING, format, a...)
}

func InfoObj(name string, v interface{}) { logObj(INFO_LOGGING, name, v) }

func InfoPrintf(format string, a ...interface{}) {
	logPrintf(INFO_LOGGING, format, a...)
}

func WarningObj(name string, v interface{}) { logObj(WARNING_LOGGING, name, v) }

func WarningPrintf(format string, a ...interface{}) {
	logPrintf(WARNING_LOGGING, format, a...)
}

func ErrorObj(name string, v interface{}) { logObj(ERROR_LOGGING, name, v) }

func ErrorPrintf(format string, a ...interface{}) {
	logPrintf(ERROR_LOGGING, format, a...)
}

func CriticalObj(name string, v interface{}) { logObj(CRITICAL_LOGGING, name, v) }

func CriticalPrintf(format string, a ...interface{}) {
	logPrintf(CRITICAL_LOGGING, format, a...)
}
