// cmd/appgatewayctl/resolve.go
// Implements `appgatewayctl resolve <method>`, a dry-run of the Method
// Resolver: loads the same resolution config validate would and prints the
// resolution row a live gateway would use to dispatch that method, without
// ever invoking a downstream plugin.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rdkcentral/appgateway/internal/gateway"
)

func newResolveCmd() *cobra.Command {
	var basePaths []string
	var regionConfig, vendorConfig, buildConfig string

	cmd := &cobra.Command{
		Use:   "resolve <method>",
		Short: "Dry-run resolve a method against the resolver configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := args[0]

			rc := gateway.ResolverConfig{
				BasePaths:        basePaths,
				RegionConfigPath: regionConfig,
				VendorConfigPath: vendorConfig,
				BuildConfigPath:  buildConfig,
			}

			resolver := gateway.NewResolver()
			if err := resolver.Configure(rc.ResolvePaths()); err != nil {
				return fmt.Errorf("resolve: %w", err)
			}

			row, ok := resolver.Row(method)
			if !ok {
				fmt.Printf("%s: not supported (no resolution entry)\n", method)
				os.Exit(1)
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(row)
		},
	}

	cmd.Flags().StringSliceVar(&basePaths, "resolver-paths", nil, "comma-separated resolution file paths")
	cmd.Flags().StringVar(&regionConfig, "region-config", "", "path to a regions.json document")
	cmd.Flags().StringVar(&vendorConfig, "vendor-config", "", "path to a vendor config JSON document")
	cmd.Flags().StringVar(&buildConfig, "build-config", "", "path to a build config JSON document")
	return cmd
}
