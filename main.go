package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dreitier/treelist/cli"
	"github.com/dreitier/treelist/storage"
	log "github.com/sirupsen/logrus"
)

const app = "treelist"

var gitRepo = "dreitier/treelist"
var gitCommit = "unknown"
var gitTag = "unknown"

func printVersion() {
	if gitTag == "" {
		gitTag = "err-no-git-tag"
	}

	log.Debugf("%s (dist=%s; version=%s; commit=%s)", app, gitRepo, gitTag, gitCommit)
}

func main() {
	configureLogrus()
	printVersion()

	cli.Version = gitTag

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCommand(storage.NewClient))
	stop()

	os.Exit(code)
}

func configureLogrus() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
	log.SetOutput(os.Stderr)
}
