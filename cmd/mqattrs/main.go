package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/danmuck/mqlink/internal/config"
	"github.com/danmuck/mqlink/internal/logging"
	"github.com/danmuck/mqlink/internal/mqi"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/memdriver"
)

func main() {
	configPath := flag.String("config", "", "connection profile file (optional, demo driver without it)")
	profile := flag.String("profile", "", "profile name, file default when empty")
	pattern := flag.String("queue", "*", "queue name pattern")
	flag.Parse()

	logging.Configure(logging.Runtime, os.Stderr)
	log := logging.New("mqattrs")

	qmgrName := "QM.DEMO"
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		p, err := f.Profile(*profile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to resolve profile")
		}
		qmgrName = p.QueueManager
	}

	// The in-memory driver stands in for a broker transport; it hosts a
	// few queues so the inquiry has something to report.
	drv := memdriver.New(qmgrName)
	for _, q := range []string{"DEV.QUEUE.1", "DEV.QUEUE.2", "DEV.DEAD.LETTER.QUEUE"} {
		drv.DefineQueue(q)
	}

	pcf, err := mqi.ConnectPCF(drv, qmgrName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}
	defer func() {
		if err := pcf.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("disconnect failed")
		}
	}()

	rows, err := pcf.Execute("MQCMD_INQUIRE_Q", map[int32]any{cmqc.MQCA_Q_NAME: *pattern})
	if err != nil {
		log.Fatal().Err(err).Msg("inquire failed")
	}

	for _, row := range mqi.StringifyKeys(rows) {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-28s %v\n", k, row[k])
		}
		fmt.Println()
	}
	log.Info().Int("queues", len(rows)).Str("pattern", *pattern).Msg("inquiry complete")
}
