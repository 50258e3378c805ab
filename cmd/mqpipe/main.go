package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/mqlink/internal/logging"
	"github.com/danmuck/mqlink/internal/mqi"
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
	"github.com/danmuck/mqlink/internal/mqi/memdriver"
	"github.com/danmuck/mqlink/internal/mqi/wire"
)

func main() {
	queueName := flag.String("queue", "DEV.PIPE", "queue to put and get through")
	text := flag.String("text", "hello from mqpipe", "message body")
	withHeader := flag.Bool("rfh2", false, "wrap the message in an RFH2 header")
	flag.Parse()

	logging.Configure(logging.Runtime, os.Stderr)
	log := logging.New("mqpipe")

	drv := memdriver.New("QM.DEMO")
	drv.DefineQueue(*queueName)

	qm := mqi.NewQueueManager(drv)
	if err := qm.Connect("QM.DEMO"); err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}
	defer qm.Close()

	queue, err := mqi.NewDeferredQueue(qm, *queueName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build queue")
	}

	md := qm.Env().NewMD()
	if *withHeader {
		h := wire.NewRFH2()
		if err := h.AddFolder([]byte("<usr><origin>mqpipe</origin></usr>")); err != nil {
			log.Fatal().Err(err).Msg("failed to build header")
		}
		if err := h.Set("Format", cmqc.MQFMT_STRING); err != nil {
			log.Fatal().Err(err).Msg("failed to chain format")
		}
		if err := queue.PutRFH2([]byte(*text), md, nil, []*wire.RFH2{h}); err != nil {
			log.Fatal().Err(err).Msg("put failed")
		}
	} else {
		if err := queue.Put([]byte(*text), md, nil); err != nil {
			log.Fatal().Err(err).Msg("put failed")
		}
	}
	msgID, _ := md.GetBytes("MsgId")
	log.Info().Str("queue", *queueName).Hex("msgid", msgID).Msg("message put")

	getMD := qm.Env().NewMD()
	body, headers, err := queue.GetRFH2(-1, getMD, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("get failed")
	}
	for _, h := range headers {
		for _, root := range h.Folders() {
			folder, _ := h.Folder(root)
			fmt.Printf("folder %s: %s\n", root, folder)
		}
	}
	fmt.Printf("body: %s\n", body)
	log.Info().Int("headers", len(headers)).Int("bytes", len(body)).Msg("message got")
}
