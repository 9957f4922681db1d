// Command smoke probes a running dashboard deployment and prints a pass/fail report.
// It exits with 0 only if every check passed.
//
// The target is read from the configuration: SMOKE_HOST, SMOKE_PORT, SMOKE_TIMEOUT and SMOKE_PAGEPATH.
// SMOKE_TIMEOUT is per probe, either a duration ("5s") or a number of milliseconds ("5000").
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	logsvc "github.com/trezcool/masomo-dashboard/services/logger"
)

// mockable
var (
	osExit              = os.Exit
	newConfig           = core.NewConfig
	newRunner           = NewRunner
	logOutput io.Writer = os.Stderr
)

func main() {
	osExit(run(os.Stdout))
}

// run returns the process exit code. An unexpected panic is logged and exits with 2.
func run(out io.Writer) (code int) {
	conf := newConfig()
	logger := logsvc.NewRollbarLogger(log.New(logOutput, "SMOKE : ", log.LstdFlags|log.Lmicroseconds), conf)
	defer logger.Wait()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("smoke test crashed: %v", r))
			code = 2
		}
	}()

	var sess auth.Session
	if conf.API.Token != "" {
		var err error
		if sess, err = auth.SessionFromToken(conf.API.Token, conf.API.SchoolID); err != nil {
			logger.Error(fmt.Sprintf("invalid API token: %v", err), err)
			return 1
		}
	}

	runner, err := newRunner(Options{
		Host:     conf.Smoke.Host,
		Port:     conf.Smoke.Port,
		Timeout:  conf.Smoke.Timeout,
		PagePath: conf.Smoke.PagePath,
		Session:  sess,
		Logger:   logger,
	})
	if err != nil {
		logger.Error(err.Error(), err)
		return 1
	}

	rep := runner.Run(context.Background())
	rep.Render(out, terminalWidth())
	return rep.ExitCode()
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return defaultWidth
	}
	return width
}
