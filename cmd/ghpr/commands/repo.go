package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/github"
)

// RepoCmd prints the resolved owner/repo identifier
var RepoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Show the GitHub repository results are published to",
	Long: `Resolve the owner/repo identifier of the analyzed project.

github.repository wins when set. Otherwise links.scm_dev and then links.scm
are parsed; only github.com clone URLs ending in .git are recognized.

With --from-clone the origin remote of a local Git clone is used instead.

Examples:
  ghpr repo                     # Resolve from configuration
  ghpr repo --from-clone .      # Resolve from the clone in the current directory`,
	Args: cobra.NoArgs,
	RunE: runRepo,
}

var repoFromClone string

func init() {
	RepoCmd.Flags().StringVar(&repoFromClone, "from-clone", "", "Read the origin remote of the Git clone at this path")
}

func runRepo(cmd *cobra.Command, args []string) error {
	var (
		repo string
		err  error
	)
	if repoFromClone != "" {
		repo, err = github.RepositoryFromClone(repoFromClone)
	} else {
		repo, err = github.ResolveRepository(am.GetViper())
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), repo)
	return nil
}
