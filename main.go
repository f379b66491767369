package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wisdomhq/shellprobe/cmd"
)

func main() {
	defer recoverPanic()

	if err := cmd.RootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func recoverPanic() {
	if r := recover(); r != nil {
		logrus.Fatalf("Error: %v\n", r)
	}
}
