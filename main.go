package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tuannh982/spreader-detector/config"
	"github.com/tuannh982/spreader-detector/tracing"
	"github.com/tuannh982/spreader-detector/utils/collections"
	"github.com/tuannh982/spreader-detector/utils/logging"
)

func main() {
	configPath := flag.String("config", "", "toml config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config file] <people-file> <meetings-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(*configPath, flag.Arg(0), flag.Arg(1)); err != nil {
		log.WithError(err).Error("spreader detector failed")
		os.Exit(1)
	}
}

func run(configPath, peoplePath, meetingsPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	closer, err := logging.Setup(log.StandardLogger(), logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := make([]tracing.Option, 0)
	if cfg.MaxSlots > 0 {
		opts = append(opts, tracing.WithContainerOptions(collections.WithAllocator(collections.NewLimitedAllocator(cfg.MaxSlots))))
	}
	sd, err := tracing.New(cfg.Params(), opts...)
	if err != nil {
		return err
	}
	defer sd.Close()

	if err = readFile(peoplePath, sd.ReadPeople); err != nil {
		return err
	}
	if err = readFile(meetingsPath, sd.ReadMeetings); err != nil {
		return err
	}
	log.WithFields(log.Fields{"people": sd.NumPeople(), "meetings": sd.NumMeetings()}).Info("input loaded")
	if err = sd.CalculateInfectionChances(); err != nil {
		return err
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	if err = sd.WriteTreatments(out); err != nil {
		_ = out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return errors.Wrap(err, "close output file")
	}
	log.WithField("output", cfg.OutputPath).Info("treatments written")
	return nil
}

func readFile(path string, read func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return errors.Wrapf(read(f), "read %s", path)
}
