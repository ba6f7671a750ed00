package main

import (
	"flag"
	"log"

	"github.com/danmuck/noddictl/internal/config"
)

func main() {
	output := flag.String("output", "noddictl.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "noddictl.toml", "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		if _, err := config.LoadRunConfig(*input); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated run config at %s", *input)
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote run config template to %s", *output)
}
