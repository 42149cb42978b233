package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/display"
	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/github"
	"github.com/teranos/ghpr/proxy"
)

// ResolveCmd prints every resolved publishing setting
var ResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show all resolved pull request publishing settings",
	Long: `Resolve every setting used to publish pull request analysis results and
print them as a table. Resolution failures are shown inline rather than
aborting, so one bad value does not hide the others.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	ResolveCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	settings := github.NewSettings(am.GetViper())
	rows := resolvedRows(settings)

	if display.ShouldOutputJSON(cmd) {
		values := make(map[string]string, len(rows))
		for _, row := range rows {
			values[row[0]] = row[1]
		}
		return display.OutputJSON(cmd.OutOrStdout(), values)
	}

	data := pterm.TableData{{"Setting", "Value"}}
	data = append(data, rows...)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func resolvedRows(s *github.Settings) [][]string {
	repo, err := s.Repository()
	if err != nil {
		repo = "error: " + err.Error()
	}

	pullRequest := "not set (publishing disabled)"
	if s.IsEnabled() {
		pullRequest = strconv.Itoa(s.PullRequestNumber())
	}

	oauth := "not set"
	if s.OAuth() != "" {
		oauth = am.RedactedValue
	}

	return [][]string{
		{"repository", repo},
		{"pull request", pullRequest},
		{"endpoint", s.Endpoint()},
		{"oauth", oauth},
		{"inline comments", strconv.FormatBool(s.TryReportIssuesInline())},
		{"max global issues", strconv.Itoa(github.MaxGlobalIssues)},
		{"proxy", proxyRow(s)},
	}
}

func proxyRow(s *github.Settings) string {
	if !s.IsProxyConnectionEnabled() {
		return "direct"
	}
	d, err := s.HTTPProxy()
	if err != nil {
		if errors.Is(err, proxy.ErrProxyNotDefined) {
			return "direct (endpoint excluded)"
		}
		return "error: " + err.Error()
	}
	return d.String()
}
