package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kroma-labs/restpath"
)

func newTimelineCommand(a *app) *cobra.Command {
	var trimUser bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Fetch statuses/public_timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(a.errOut, a.settings.LogLevel)
			api, err := newClient(a.settings, logger)
			if err != nil {
				return err
			}

			resp, err := api.Segment("statuses").Segment("public_timeline").
				Get(cmd.Context(), restpath.Params{"trim_user": trimUser})
			if err != nil {
				return fmt.Errorf("fetch public timeline: %w", err)
			}

			return render(a.out, a.settings.Output, resp.Data)
		},
	}

	cmd.Flags().BoolVar(&trimUser, "trim-user", true, "return only user ids in each status")
	return cmd
}
