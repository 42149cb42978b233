package github

import (
	"regexp"
	"strings"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/logger"
)

// Clone URL patterns. Both capture exactly owner/repo and require the .git
// suffix; anchoring makes trailing text after .git a mismatch.
var (
	sshURLPattern  = regexp.MustCompile(`^.*@github\.com:([^/\s]+/[^/\s]+)\.git$`)
	httpURLPattern = regexp.MustCompile(`^https?://github\.com/([^/\s]+/[^/\s]+)\.git$`)
)

// MatchSSH extracts owner/repo from an SSH clone URL such as
// git@github.com:acme/widgets.git. Anything may precede the @.
func MatchSSH(s string) (string, bool) {
	return match(sshURLPattern, s)
}

// MatchHTTP extracts owner/repo from an HTTP(S) clone URL such as
// https://github.com/acme/widgets.git.
func MatchHTTP(s string) (string, bool) {
	return match(httpURLPattern, s)
}

func match(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractRepository tries the SSH form, then the HTTP(S) form
func ExtractRepository(s string) (string, bool) {
	if repo, ok := MatchSSH(s); ok {
		return repo, true
	}
	return MatchHTTP(s)
}

// ResolveRepository determines the owner/repo identifier of the analyzed project.
//
// An explicit github.repository wins: a clone URL is reduced to owner/repo,
// any other value is returned as given. A blank value counts as unset.
// Otherwise links.scm_dev and then links.scm are tried. Failures are
// configuration errors.
func ResolveRepository(src am.Source) (string, error) {
	log := logger.ComponentLogger("github")

	if raw := strings.TrimSpace(src.GetString(am.KeyRepository)); raw != "" {
		if repo, ok := ExtractRepository(raw); ok {
			return repo, nil
		}
		if !strings.Contains(raw, "/") {
			log.Warnw("Repository is not in owner/repo form, using it as given",
				logger.FieldKey, am.KeyRepository,
				logger.FieldRepository, raw)
		}
		return raw, nil
	}

	devURL := src.GetString(am.KeyLinksSourcesDev)
	scmURL := src.GetString(am.KeyLinksSources)

	if strings.TrimSpace(devURL) == "" && strings.TrimSpace(scmURL) == "" {
		return "", errors.WithHint(
			errors.NewConfigurationError("unable to determine GitHub repository name for this project"),
			"set "+am.KeyRepository+" (owner/repo) or configure "+am.KeyLinksSources,
		)
	}

	for _, candidate := range []string{devURL, scmURL} {
		if repo, ok := ExtractRepository(strings.TrimSpace(candidate)); ok {
			log.Debugw("Repository resolved from SCM link",
				logger.FieldRemote, candidate,
				logger.FieldRepository, repo)
			return repo, nil
		}
	}

	return "", errors.WithHint(
		errors.NewConfigurationError("unable to parse GitHub repository name from %s=%q and %s=%q",
			am.KeyLinksSourcesDev, devURL, am.KeyLinksSources, scmURL),
		"only github.com clone URLs ending in .git are recognized, e.g. git@github.com:owner/repo.git or https://github.com/owner/repo.git",
	)
}
