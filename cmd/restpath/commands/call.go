package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kroma-labs/restpath"
)

func newCallCommand(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "call <resource.path.verb> [key=value ...]",
		Short: "Call any endpoint through a dotted expression",
		Example: `  restpath call users.show.get screen_name=gopher
  restpath call statuses.update.post status="hello world"
  restpath call --raw help.configuration.get`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			logger := newLogger(a.errOut, a.settings.LogLevel)
			api, err := newClient(a.settings, logger)
			if err != nil {
				return err
			}

			if raw {
				return callRaw(cmd, a, api, args[0], params)
			}

			resp, err := api.Call(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return render(a.out, a.settings.Output, resp.Data)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the response body without decoding it")
	return cmd
}

func callRaw(cmd *cobra.Command, a *app, api *restpath.Client, expr string, params restpath.Params) error {
	body, err := api.CallRaw(cmd.Context(), expr, params)
	if err != nil {
		return err
	}
	_, err = a.out.Write(body)
	return err
}

// parseParams turns key=value arguments into Params. "true" and "false"
// become booleans so they go out as 1 and 0.
func parseParams(args []string) (restpath.Params, error) {
	params := make(restpath.Params, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (want key=value)", arg)
		}
		switch value {
		case "true":
			params[key] = true
		case "false":
			params[key] = false
		default:
			params[key] = value
		}
	}
	return params, nil
}
