package main

import (
	"errors"
	"os"

	"github.com/jakebark/nftcsv/internal/core"
	"github.com/jakebark/nftcsv/internal/inputs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true}) // remove timestamp from prints

	userInput, err := inputs.ParseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	processor := core.NewProcessor(afero.NewOsFs(), userInput, log)

	if err := processor.Run(); err != nil {
		log.Fatal(err)
	}
}
