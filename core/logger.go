package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type customFormatter struct {
	logrus.TextFormatter
}

func (f *customFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s][%s] \t%s\n", entry.Time.Format(f.TimestampFormat), strings.ToUpper(entry.Level.String()), entry.Message)), nil
}

func InitLogger(isVerbose, isDebug bool) {
	logrus.SetFormatter(&customFormatter{logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05",
		ForceColors:            true,
		DisableLevelTruncation: true,
	}})

	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	if isVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if isDebug {
		logrus.SetLevel(logrus.TraceLevel)
		logrus.SetReportCaller(true)

		f, err := os.OpenFile("./shellprobe.log", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			fmt.Println("Failed to create logfile: ./shellprobe.log")
			panic(err)
		}
		logrus.SetOutput(io.MultiWriter(f, os.Stdout))
	}
}
