package store

import (
	"encoding/json"
	"os"
	"strings"

	"yt-gist/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LoadPrompts returns the stored prompt templates. When no settings file
// exists yet the built-in defaults are written out and returned, so the
// defaults always exist on first run.
func (s *Store) LoadPrompts() ([]string, error) {
	data, err := os.ReadFile(s.settingFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "error reading settings file")
		}
		prompts := append([]string(nil), models.DefaultPrompts...)
		if err := s.SavePrompts(prompts); err != nil {
			return nil, err
		}
		logrus.WithField("file", s.settingFile).Info("Created settings file with default prompts")
		return prompts, nil
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrap(err, "error parsing settings file")
	}
	return settings.Prompts, nil
}

// SavePrompts overwrites the settings file in full. An empty prompt list is
// allowed; it disables generation actions at the caller.
func (s *Store) SavePrompts(prompts []string) error {
	if prompts == nil {
		prompts = []string{}
	}
	data, err := json.MarshalIndent(models.Settings{Prompts: prompts}, "", "    ")
	if err != nil {
		return errors.Wrap(err, "error encoding settings")
	}
	if err := os.WriteFile(s.settingFile, data, 0o644); err != nil {
		return errors.Wrap(err, "error writing settings file")
	}
	return nil
}

// LoadAPIKey returns the stored credential, or an empty string when none is
// configured.
func (s *Store) LoadAPIKey() (string, error) {
	data, err := os.ReadFile(s.apiKeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "error reading API key file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) SaveAPIKey(key string) error {
	if err := os.WriteFile(s.apiKeyFile, []byte(strings.TrimSpace(key)), 0o600); err != nil {
		return errors.Wrap(err, "error writing API key file")
	}
	return nil
}
