package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/strrl/jb-recent/internal/plugin"
	"github.com/strrl/jb-recent/pkg/models"
)

var queryJSON bool

// NewQueryCommand creates the query command
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [string...]",
		Short: "Run one launcher query and print the results",
		Long: `Run the query handler once, the way a launcher host would after the
trigger was typed, and print the resulting items in order.`,
		RunE: runQuery,
	}
	cmd.Flags().BoolVar(&queryJSON, "json", false, "Print one JSON object per item")
	return cmd
}

type jsonAction struct {
	Text string   `json:"text"`
	Argv []string `json:"argv"`
}

type jsonItem struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	Subtext    string       `json:"subtext"`
	Icon       string       `json:"icon,omitempty"`
	Completion string       `json:"completion"`
	Actions    []jsonAction `json:"actions"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	launcher, err := newLauncher()
	if err != nil {
		return err
	}

	req := &plugin.Request{Text: strings.Join(args, " "), Triggered: true}
	plugin.New(cfg, paths).HandleQuery(req)

	out := cmd.OutOrStdout()
	if queryJSON {
		enc := json.NewEncoder(out)
		for _, item := range req.Items {
			if err := enc.Encode(toJSONItem(item, launcher.Argv)); err != nil {
				return fmt.Errorf("failed to encode item: %w", err)
			}
		}
		return nil
	}

	if len(req.Items) == 0 {
		fmt.Fprintln(out, "No projects found")
		return nil
	}
	for i, item := range req.Items {
		fmt.Fprintf(out, "%d. %s\n", i+1, item.Text)
		fmt.Fprintf(out, "   Path: %s\n", item.Subtext)
		for _, action := range item.Actions {
			fmt.Fprintf(out, "   Action: %s\n", action.Text)
		}
	}
	return nil
}

func toJSONItem(item models.Item, argv func(models.LaunchAction) []string) jsonItem {
	out := jsonItem{
		ID:         item.ID,
		Text:       item.Text,
		Subtext:    item.Subtext,
		Icon:       item.Icon,
		Completion: item.Completion,
		Actions:    make([]jsonAction, 0, len(item.Actions)),
	}
	for _, action := range item.Actions {
		out.Actions = append(out.Actions, jsonAction{Text: action.Text, Argv: argv(action)})
	}
	return out
}
