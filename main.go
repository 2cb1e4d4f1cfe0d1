package main

import (
	"flag"

	"github.com/cloudflare/cfssl/log"

	"github.com/greenguardV2/chain"
	"github.com/greenguardV2/client"
	"github.com/greenguardV2/config"
	"github.com/greenguardV2/contract"
	"github.com/greenguardV2/stats"
)

func main() {
	Start()
}

func Start() {
	confDir := flag.String("c", "./config", "config directory")
	listen := flag.String("l", "", "listen address override")
	flag.Parse()

	conf, err := config.Load(*confDir)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *listen != "" {
		conf.ListenAddr = *listen
	}

	bc := chain.NewBlockChain(conf.Difficulty, conf.MaxMineAttempts)
	registry := contract.NewRegistry()
	registry.DeployDefaults()
	aggregator := stats.NewAggregator(bc, registry)

	log.Infof("verification ledger initialized: difficulty=%d contracts=%d", conf.Difficulty, registry.Count())

	srv := client.NewServer(bc, registry, aggregator)
	if err := srv.ListenRequest(conf.ListenAddr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
