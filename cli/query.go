package cli

import (
	"github.com/spf13/cobra"
)

var warCmd = &cobra.Command{
	Use:   "war",
	Short: "Show the status of the current war.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		war, err := newClient().WarData(cmd.Context())
		if err != nil {
			return err
		}

		output(cmd, war)
		return nil
	},
}

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the names of all active map hexes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := newClient().MapNames(cmd.Context())
		if err != nil {
			return err
		}

		output(cmd, names)
		return nil
	},
}

var staticCmd = &cobra.Command{
	Use:   "static <map>",
	Short: "Show the static data of a map hex (labels, resource fields).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().MapDataStatic(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		output(cmd, data)
		return nil
	},
}

var dynamicCmd = &cobra.Command{
	Use:   "dynamic <map>",
	Short: "Show the public dynamic data of a map hex (town halls, relics, ownership).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().MapDataDynamic(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		output(cmd, data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warCmd, mapsCmd, staticCmd, dynamicCmd)
}
