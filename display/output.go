// Package display formats command results for the terminal or for scripts.
package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/ghpr/errors"
)

// ShouldOutputJSON reports whether the command's --json flag is set
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil || cmd.Flags().Lookup("json") == nil {
		return false
	}
	jsonFlag, _ := cmd.Flags().GetBool("json")
	return jsonFlag
}

// OutputJSON writes v to w as indented JSON
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
