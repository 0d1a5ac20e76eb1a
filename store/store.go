// Package store persists the settings, API key and last-result files. The
// formats mirror the files the presentation layer inspects: setting.json with
// the prompt list, api.txt with the raw key, result.json with the last
// successful fetch.
package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	settingFileName = "setting.json"
	apiKeyFileName  = "api.txt"
	resultFileName  = "result.json"
)

type Store struct {
	settingFile string
	apiKeyFile  string
	resultFile  string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "error creating data directory")
	}
	return &Store{
		settingFile: filepath.Join(dir, settingFileName),
		apiKeyFile:  filepath.Join(dir, apiKeyFileName),
		resultFile:  filepath.Join(dir, resultFileName),
	}, nil
}
