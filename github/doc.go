// Package github resolves the settings needed to publish pull request analysis
// results to GitHub.
//
// The main entry points:
//   - ResolveRepository works out the owner/repo identifier from explicit
//     configuration or from the project's SCM links (SSH or HTTPS clone URLs)
//   - Settings is a thin facade over a configuration Source exposing the pull
//     request number, OAuth token, API endpoint, inline comment behavior and
//     the outbound proxy
//   - RepositoryFromClone reads the origin remote of a local clone
//
// Usage:
//
//	settings := github.NewSettings(am.GetViper())
//	if !settings.IsEnabled() {
//	    return nil // not a pull request analysis
//	}
//	repo, err := settings.Repository()
//	client, err := settings.HTTPClient(30 * time.Second)
//
// Configuration:
//
//	[github]
//	repository = "acme/widgets"
//	pull_request = 42
//
//	[links]
//	scm = "https://github.com/acme/widgets.git"
//
// The token is usually provided through the environment:
//
//	GITHUB_TOKEN=ghp_...
package github
