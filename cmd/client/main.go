package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/irispredictor/internal/client/cli"
	"github.com/dmitrijs2005/irispredictor/internal/client/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	cli.NewApp(cfg).Run(context.Background())
}
