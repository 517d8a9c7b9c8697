package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/registry"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the services and the hosts they resolve to",
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := registry.DefaultsFor(registry.Environment(cfg.Environment))
		if err != nil {
			return err
		}
		formatServices(os.Stdout, d.Hosts, cfg.Hosts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}

// formatServices prints one row per known service. Hosts from overrides
// replace the environment defaults.
func formatServices(w io.Writer, defaults, overrides map[string]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tHOST\tSOURCE\tENV VAR")
	for _, name := range registry.KnownServices() {
		host, source := defaults[name], "default"
		if o, ok := overrides[name]; ok && o != "" {
			host, source = o, "config"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, host, source, registry.HostEnvVar(name))
	}
	tw.Flush() //nolint:errcheck
}
