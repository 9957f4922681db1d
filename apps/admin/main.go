// Command admin is the dashboard operator's command line: sign in, mint dev tokens
// and print the events calendar of a month.
package main

import (
	"log"
	"os"
	"time"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	apisvc "github.com/trezcool/masomo-dashboard/services/api"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	var sess auth.Session
	if conf.API.Token != "" {
		var err error
		if sess, err = auth.SessionFromToken(conf.API.Token, conf.API.SchoolID); err != nil {
			logger.Fatal("invalid API token", err)
		}
	}
	client, err := apisvc.NewClient(apisvc.Options{
		BaseURL: conf.API.BaseURL,
		Timeout: conf.API.Timeout,
		Session: sess,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal(err.Error(), err)
	}

	// start CLI
	cli := commandLine{
		conf: conf,
		api:  client,
		out:  os.Stdout,
		now:  time.Now,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		logger.Wait()
		os.Exit(1)
	}
}
