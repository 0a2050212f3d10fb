package jhu

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/schema"
)

// RepoSource reads the time series from a local clone of the CSSE
// repository, cloning it the first time a file is needed
type RepoSource struct {
	Repo string
	Dir  string

	git string
}

// Clone runs a shallow git clone of the repository unless the directory already exists
func (s *RepoSource) Clone(ctx context.Context) error {
	if _, err := os.Stat(s.Dir); err == nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "dir": s.Dir}).Debug("reuse jhu clone")
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if parent := filepath.Dir(s.Dir); parent != "" {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "repo": s.Repo, "dir": s.Dir}).Info("clone jhu repository")
	cmd := exec.CommandContext(ctx, s.git, "clone", "--depth", "1", s.Repo, s.Dir)
	if output, err := cmd.CombinedOutput(); err != nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "output": string(output), "error": err}).Error("clone jhu repository")
		return fmt.Errorf("git clone %s: %w", s.Repo, err)
	}
	return nil
}

// Path - location of a metric file inside the clone
func (s *RepoSource) Path(metric schema.Metric) string {
	return filepath.Join(s.Dir, filepath.FromSlash(timeSeriesPath), FileName(metric))
}

func (s *RepoSource) Fetch(ctx context.Context, metric schema.Metric) (io.ReadCloser, error) {
	if err := s.Clone(ctx); err != nil {
		return nil, err
	}
	return os.Open(s.Path(metric))
}

// NewRepoSource - jhu source backed by a clone of repo in dir
func NewRepoSource(repo, dir string) *RepoSource {
	return &RepoSource{
		Repo: repo,
		Dir:  dir,
		git:  "git",
	}
}
