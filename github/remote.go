package github

import (
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/logger"
)

// DefaultRemote is the remote read by OriginURL
const DefaultRemote = "origin"

// OriginURL returns the first URL of the origin remote of the Git clone that
// contains dir. Parent directories are searched for .git.
func OriginURL(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open git repository at %s", dir)
	}

	remote, err := repo.Remote(DefaultRemote)
	if err != nil {
		return "", errors.WithHint(
			errors.Wrapf(err, "repository at %s has no %s remote", dir, DefaultRemote),
			"add one with: git remote add origin git@github.com:owner/repo.git",
		)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return "", errors.Newf("remote %s of repository at %s has no URL", DefaultRemote, dir)
	}
	return urls[0], nil
}

// RepositoryFromClone resolves owner/repo from the origin remote of a local
// clone. The remote must be a github.com clone URL.
func RepositoryFromClone(dir string) (string, error) {
	originURL, err := OriginURL(dir)
	if err != nil {
		return "", err
	}

	repo, ok := ExtractRepository(originURL)
	if !ok {
		return "", errors.WithHint(
			errors.NewConfigurationError("remote %s URL %q is not a github.com clone URL", DefaultRemote, originURL),
			"set github.repository explicitly",
		)
	}

	logger.ComponentLogger("github").Debugw("Repository resolved from local clone",
		logger.FieldPath, dir,
		logger.FieldRemote, originURL,
		logger.FieldRepository, repo)
	return repo, nil
}
