package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/dum-monitor/dum/internal/pkg/utils"
	"github.com/dum-monitor/dum/internal/pkg/watchers"
)

// validate checks the whole configuration. It either succeeds completely or
// reports the first problem; a partially valid config is never acted upon.
func (c *Config) validate() error {
	if err := validateDirectories(c.Directories); err != nil {
		return err
	}
	c.Directories = utils.DedupeStrings(c.Directories)

	if c.ThresholdLimit < 1 {
		return fmt.Errorf("ThresholdLimit must be a positive integer (GiB), got %d", c.ThresholdLimit)
	}

	enabled, err := ValidateGotify(c.GotifyURL, c.GotifyToken)
	if err != nil {
		return err
	}
	c.NotifyEnabled = enabled

	return nil
}

func validateDirectories(dirs []string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("no directories specified")
	}

	for _, dir := range dirs {
		if !filepath.IsAbs(dir) {
			return fmt.Errorf("directory %q is not an absolute path", dir)
		}

		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("directory %q does not exist: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%q is not a directory", dir)
		}
	}

	if err := watchers.SameDevice(dirs); err != nil {
		return fmt.Errorf("directories are not on the same disk: %w", err)
	}

	return nil
}

// ValidateGotify checks the both-or-neither rule for the notification
// credentials. It returns whether notification is enabled, and an error when
// only one of the two values is set or the URL is malformed.
func ValidateGotify(url, token string) (bool, error) {
	url, token = strings.TrimSpace(url), strings.TrimSpace(token)

	switch {
	case url == "" && token == "":
		return false, nil
	case url == "" || token == "":
		return false, fmt.Errorf("either GotifyURL or GotifyToken is specified but not the other; " +
			"both must be specified or both must be empty")
	}

	if !govalidator.IsURL(url) {
		return false, fmt.Errorf("GotifyURL %q is not a valid URL", url)
	}

	return true, nil
}
