package core

import (
	"testing"

	"github.com/jakebark/nftcsv/internal/config"
	"github.com/jakebark/nftcsv/internal/inputs"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func mustDocument(t *testing.T, src string) Document {
	t.Helper()
	v, err := fastjson.Parse(src)
	require.NoError(t, err)
	doc, ok := newDocument(v)
	require.True(t, ok, "not a JSON object: %s", src)
	return doc
}

func defaultInput() inputs.UserInput {
	return inputs.UserInput{
		InputDir:         config.DefaultInputDir,
		OutputDir:        config.DefaultOutputDir,
		Sort:             true,
		IDFrom:           inputs.IDAuto,
		FilenameTemplate: config.DefaultFilenameTemplate,
	}
}

func newTestProcessor(fs afero.Fs, userInput inputs.UserInput) (*Processor, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewProcessor(fs, userInput, log), hook
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
}

func id(n int64) *int64 {
	return &n
}
