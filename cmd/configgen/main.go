package main

import (
	"flag"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/rs/zerolog/log"
)

const defaultPath = "cmd/bitsctl/config.toml"

func main() {
	logging.ConfigureRuntime()

	kind := flag.String("kind", "bitsctl", "config kind: bitsctl")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to "+defaultPath+")")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if _, err := config.Template(*kind); err != nil {
		log.Fatal().Err(err).Msg("configgen")
	}

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath
		}
		if _, err := config.LoadDecoderConfig(path); err != nil {
			log.Fatal().Err(err).Msg("configgen")
		}
		log.Info().Str("kind", *kind).Str("path", path).Msg("validated config")
		return
	}

	target := *output
	if target == "" {
		target = defaultPath
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal().Err(err).Msg("configgen")
	}
	log.Info().Str("kind", *kind).Str("path", target).Msg("wrote config template")
}
