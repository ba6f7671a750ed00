package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/noddictl/internal/bids"
	"github.com/danmuck/noddictl/internal/config"
	"github.com/danmuck/noddictl/internal/observability"
	"github.com/danmuck/noddictl/internal/roitable"
	"github.com/danmuck/noddictl/internal/store"
	"github.com/danmuck/noddictl/internal/wholebrain"
)

func main() {
	var participantsTSV, noddiRegDir, outputDir, configPath, sqlitePath string
	var debug bool

	flag.StringVar(&participantsTSV, "participants_tsv", "", "participants.tsv roster file")
	flag.StringVar(&noddiRegDir, "noddi_reg_dir", "", "input derivatives directory from noddi_reg")
	flag.StringVar(&outputDir, "output_dir", "", "directory for per-parcellation output CSVs")
	flag.StringVar(&configPath, "config", "", "optional TOML run config overriding the defaults")
	flag.StringVar(&sqlitePath, "sqlite", "", "optional SQLite database to also receive whole-brain rows")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()

	if participantsTSV == "" || noddiRegDir == "" || outputDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	observability.ConfigureRuntime("noddictl")
	if debug {
		observability.EnableDebug()
	}

	cfg := config.DefaultRunConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadRunConfig(configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load run config")
		}
		log.Info().Str("path", configPath).Msg("loaded run config")
	}

	tissues, err := roitable.LoadTissueTypes(cfg.TissueTypesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tissue-type reference")
	}

	roster, err := wholebrain.LoadRoster(participantsTSV)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load participant roster")
	}

	layout, err := bids.NewLayout(noddiRegDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to index derivatives directory")
	}
	log.Debug().Int("files", layout.Len()).Str("root", noddiRegDir).Msg("indexed derivatives")

	var sink wholebrain.Sink
	if sqlitePath != "" {
		db, err := store.Open(sqlitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open cohort database")
		}
		defer db.Close()
		sink = db
	}

	agg := wholebrain.NewAggregator(tissues, cfg.GMParcellation, cfg.GMTissueType)
	rows := wholebrain.NewDriver(layout, agg, sink).Run(roster)

	paths, err := wholebrain.WriteFiles(outputDir, cfg.OutputTemplate, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write output tables")
	}
	for _, path := range paths {
		log.Info().Str("path", path).Msg("wrote output table")
	}
	wholebrain.LogSummary(rows)
}
