package main

import (
	"log"
	"os"

	"github.com/oetutor/tutorhub/core"
	"github.com/oetutor/tutorhub/core/tutoring"
	emailsvc "github.com/oetutor/tutorhub/services/email"
	logsvc "github.com/oetutor/tutorhub/services/logger"
	"github.com/oetutor/tutorhub/storage/kv/sqlitekv"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up the document store
	kv, err := sqlitekv.Open(conf.DataPath)
	errAndDie(err)
	defer kv.Close()
	store := tutoring.NewDocumentStore(kv)

	var appLogger core.Logger = logsvc.NewStdLogger(logger)
	if conf.RollbarToken != "" {
		appLogger = logsvc.NewRollbarLogger(logger, conf)
	}

	svc, err := tutoring.NewService(conf, store, core.NewClock(), emailsvc.NewConsoleService(conf), appLogger)
	errAndDie(err)

	// start CLI
	cli := commandLine{svc: svc}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
