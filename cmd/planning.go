package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vepler/http-sdk/pkg/planning"
)

var planningCmd = &cobra.Command{
	Use:   "planning",
	Short: "Planning applications and map tiles",
}

var planningGetCmd = &cobra.Command{
	Use:   "get <application-id>",
	Short: "Fetch one planning application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Planning.ApplicationByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

var planningTileCmd = &cobra.Command{
	Use:   "tile",
	Short: "Download a planning vector tile",
	Long:  "Downloads one vector tile addressed by --z/--x/--y, or the tile at --z containing --lng/--lat.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tile, err := tileFromFlags(cmd)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = fmt.Sprintf("%d-%d-%d.mvt", tile.Z, tile.X, tile.Y)
		}

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		data, err := sdk.Planning.MapTile(cmd.Context(), tile)
		if err != nil {
			return err
		}
		if outPath == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return eris.Wrap(err, "planning tile: write")
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return eris.Wrapf(err, "planning tile: write %s", outPath)
		}
		zap.L().Info("tile written",
			zap.String("tile", tile.String()),
			zap.String("path", outPath),
			zap.Int("bytes", len(data)),
		)
		return nil
	},
}

func init() {
	addTileFlags(planningTileCmd)
	planningCmd.AddCommand(planningGetCmd, planningTileCmd)
	rootCmd.AddCommand(planningCmd)
}

func addTileFlags(c *cobra.Command) {
	f := c.Flags()
	f.Int("z", 0, "zoom level (0-22)")
	f.Int("x", 0, "tile column")
	f.Int("y", 0, "tile row")
	f.Float64("lng", 0, "longitude; with --lat, selects the tile containing the point")
	f.Float64("lat", 0, "latitude")
	f.String("out", "", "output file (default z-x-y.mvt, - for stdout)")
	_ = c.MarkFlagRequired("z")
	c.MarkFlagsRequiredTogether("lng", "lat")
	c.MarkFlagsMutuallyExclusive("x", "lng")
	c.MarkFlagsMutuallyExclusive("y", "lat")
}

func tileFromFlags(cmd *cobra.Command) (planning.TileCoord, error) {
	f := cmd.Flags()
	z, _ := f.GetInt("z")
	if f.Changed("lng") {
		lng, _ := f.GetFloat64("lng")
		lat, _ := f.GetFloat64("lat")
		return planning.TileAt(lng, lat, z), nil
	}
	x, _ := f.GetInt("x")
	y, _ := f.GetInt("y")
	t := planning.TileCoord{Z: z, X: x, Y: y}
	return t, t.Validate()
}
