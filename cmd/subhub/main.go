// Command subhub serves proxy subscriptions in Surge, Clash and v2ray form
// and converts descriptor lists offline.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "subhub",
	Short:        "Proxy subscription hub",
	Long:         `subhub stores proxy node descriptors per subscription path and renders them as Surge proxy lines, a Clash document or a base64 v2ray bundle.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
