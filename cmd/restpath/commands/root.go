package commands

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v        *viper.Viper
	settings Settings
	out      io.Writer
	errOut   io.Writer
}

// NewRootCommand builds the restpath CLI. Output goes to out, logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	var envFile string

	root := &cobra.Command{
		Use:   "restpath",
		Short: "Call path-structured REST APIs from the command line",
		Long: `restpath maps dotted expressions onto REST endpoints.

  restpath call statuses.public_timeline.get trim_user=true

sends GET /1.1/statuses/public_timeline.json?trim_user=1 to the configured host.
Settings come from flags, RESTPATH_* environment variables or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			s, err := LoadSettings(a.v, envFile)
			if err != nil {
				return err
			}
			a.settings = s
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.String("host", "", "API host (default api.twitter.com)")
	flags.String("url-template", "", "URL template with one %s for the path (default /1.1/%s.json)")
	flags.Bool("https", true, "use https")
	flags.StringP("output", "o", "", "output format (json, yaml, table)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Duration("timeout", 0, "request timeout (default 15s)")
	flags.Bool("debug", false, "log raw HTTP exchanges")

	bind := map[string]string{
		"host":         "host",
		"url_template": "url-template",
		"use_https":    "https",
		"output":       "output",
		"log_level":    "log-level",
		"timeout":      "timeout",
		"debug":        "debug",
	}
	for key, flag := range bind {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newTimelineCommand(a))
	root.AddCommand(newCallCommand(a))

	return root
}
