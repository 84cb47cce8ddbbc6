package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/attendance"
	"github.com/trezcool/kazi/core/employee"
	"github.com/trezcool/kazi/core/event"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/mailbox"
	"github.com/trezcool/kazi/core/payroll"
	"github.com/trezcool/kazi/core/project"
	"github.com/trezcool/kazi/core/recruit"
	logsvc "github.com/trezcool/kazi/services/logger"
	storesvc "github.com/trezcool/kazi/services/store"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stderr, "kazi ", log.LstdFlags)

	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std, conf)
	}

	store := storesvc.NewFileStore(conf.SessionFile)
	holder := core.NewSessionHolder(store)
	client := core.NewClientFromConfig(conf, holder, logger)

	cli := &commandLine{
		conf:    conf,
		store:   store,
		session: holder,
		client:  client,

		employees:  employee.NewService(client),
		leaves:     leave.NewService(client),
		attendance: attendance.NewService(client),
		payrolls:   payroll.NewService(client),
		projects:   project.NewService(client),
		mailbox:    mailbox.NewService(client),
		recruit:    recruit.NewService(client),
		events:     event.NewService(client),
	}

	if err := cli.run(os.Args); err != nil && err != errHelp {
		fmt.Fprintf(os.Stderr, "error: %s\n", core.UserMessage(err))
		os.Exit(1)
	}
}
