package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/gradebook/gradebook/internal/compute"
	"github.com/gradebook/gradebook/internal/config"
	"github.com/gradebook/gradebook/internal/export"
	"github.com/gradebook/gradebook/internal/ingest"
	"github.com/gradebook/gradebook/internal/logger"
	"github.com/gradebook/gradebook/internal/session"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to config file (optional unless set explicitly)")
	inputPath := flag.String("input", "", "analyse this CSV/TSV/XLSX file non-interactively")
	exportName := flag.String("export", "", "with -input: write results to this file")
	formatName := flag.String("format", "", "export format: csv | prom (default from config)")
	force := flag.Bool("force", false, "with -export: overwrite an existing file")
	watch := flag.Bool("watch", false, "with -input: re-run the analysis whenever the file changes")
	noColor := flag.Bool("no-color", false, "disable coloured output")
	flag.Parse()

	if err := checkFlags(*inputPath, flagSet); err != nil {
		fmt.Fprintf(os.Stderr, "gradebook: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnv()

	cfg, err := loadConfig(*configPath, flagSet("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gradebook: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.Log.Level, cfg.Log.Format)
	log.Debug().Str("config", *configPath).Str("export_format", cfg.Export.Format).
		Strs("name_aliases", cfg.Ingest.NameAliases).
		Strs("score_aliases", cfg.Ingest.ScoreAliases).
		Msg("config loaded")

	if *formatName == "" {
		*formatName = cfg.Export.Format
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -format")
	}

	color := cfg.Report.Color && !*noColor && term.IsTerminal(int(os.Stdout.Fd()))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	analyzer := compute.NewAnalyzer(log)

	if *inputPath == "" {
		s := session.New(session.Options{
			In:        os.Stdin,
			Out:       os.Stdout,
			Aliases:   ingest.AliasesFrom(cfg.Ingest),
			ExportDir: cfg.Export.Dir,
			Format:    format,
			Color:     color,
		}, analyzer, log)
		if err := s.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("session failed")
		}
		return
	}

	b := &batch{
		log:      log,
		analyzer: analyzer,
		out:      os.Stdout,
		input:    *inputPath,
		format:   format,
		force:    *force,
		color:    color,
	}
	b.setAliases(ingest.AliasesFrom(cfg.Ingest))
	if *exportName != "" {
		name, err := export.Filename(*exportName, format)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -export")
		}
		b.exportPath = export.Resolve(cfg.Export.Dir, name)
	}

	if err := b.runOnce(); err != nil {
		log.Error().Err(err).Str("input", *inputPath).Msg("analysis failed")
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}

	if flagSet("config") || fileExists(*configPath) {
		go func() {
			if err := config.Watch(ctx, *configPath, log, func(updated *config.Config) {
				b.setAliases(ingest.AliasesFrom(updated.Ingest))
				log.Info().Strs("name_aliases", updated.Ingest.NameAliases).
					Strs("score_aliases", updated.Ingest.ScoreAliases).
					Msg("config hot-reloaded")
			}); err != nil {
				log.Error().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	if err := b.watch(ctx); err != nil {
		log.Fatal().Err(err).Msg("input watcher stopped")
	}
	log.Info().Msg("gradebook shutting down")
}

// checkFlags rejects flag combinations that would otherwise be ignored.
func checkFlags(input string, isSet func(string) bool) error {
	if input == "" {
		for _, name := range []string{"export", "force", "watch"} {
			if isSet(name) {
				return fmt.Errorf("-%s requires -input", name)
			}
		}
		return nil
	}
	if isSet("force") && !isSet("export") {
		return fmt.Errorf("-force requires -export")
	}
	return nil
}

// loadConfig reads path strictly when it was named on the command line, and
// falls back to defaults when the implicit default file is absent.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(path)
	}
	return config.LoadOptional(path)
}

// flagSet reports whether the named flag was passed on the command line.
func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
