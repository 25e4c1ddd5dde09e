package core

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FindJSONFiles lists the .json files directly inside dir, sorted by filename.
func FindJSONFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	var jsonFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			jsonFiles = append(jsonFiles, filepath.Join(dir, e.Name()))
		}
	}
	return jsonFiles, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
