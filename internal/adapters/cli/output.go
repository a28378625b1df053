package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/devbush/likewrapped/internal/adapters/cli/tui"
	"github.com/devbush/likewrapped/internal/adapters/httpapi"
	"github.com/devbush/likewrapped/internal/application"
)

// writeResult prints a ranking as text or as the same JSON the HTTP API serves
func writeResult(w io.Writer, result *application.WrappedResult, format string) error {
	switch format {
	case "text":
		if len(result.Authors) == 0 {
			_, err := fmt.Fprintln(w, "No results")
			return err
		}
		_, err := io.WriteString(w, tui.FormatRanking(result.Account.Handle, result.Window.Since.Year(), result.Authors))
		return err
	case "json":
		data, err := json.MarshalIndent(httpapi.NewWrappedResponse(result), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
