package cli

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/pkg/scene"
)

var (
	gestureFrom  string
	gestureTo    string
	gestureSize  string
	gestureSetup string
	gestureYaw   float64
	gesturePitch float64
)

var gestureCmd = &cobra.Command{
	Use:   "gesture",
	Short: "Resolve a mouse drag on the rendered cube into a move",
	Long: `Hit-test a press at --from against the configured camera view, resolve the
drag to --to into a move and print it. Coordinates are window pixels with
the origin at the top left.

Example:
  twisty gesture --from 400,300 --to 400,200          # drag up at the screen center
  twisty gesture --from 760,560 --to 600,560 --yaw 0.5`,
	RunE: runGesture,
}

func init() {
	gestureCmd.Flags().StringVar(&gestureFrom, "from", "", "Press position x,y in pixels")
	gestureCmd.Flags().StringVar(&gestureTo, "to", "", "Release position x,y in pixels")
	gestureCmd.Flags().StringVar(&gestureSize, "size", "800x600", "Viewport size WxH")
	gestureCmd.Flags().StringVar(&gestureSetup, "setup", "", "Moves applied before the drag")
	gestureCmd.Flags().Float64Var(&gestureYaw, "yaw", 0, "Orbit the camera around world y (radians)")
	gestureCmd.Flags().Float64Var(&gesturePitch, "pitch", 0, "Orbit the camera up or down (radians)")
	gestureCmd.MarkFlagRequired("from")
	gestureCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(gestureCmd)
}

func runGesture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var w, h int
	if _, err := fmt.Sscanf(gestureSize, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("invalid --size %q", gestureSize)
	}
	from, err := parsePixel(gestureFrom)
	if err != nil {
		return err
	}
	to, err := parsePixel(gestureTo)
	if err != nil {
		return err
	}

	cube := twisty.NewCube()
	if err := cube.ApplyNotation(gestureSetup); err != nil {
		return err
	}

	cam := scene.NewPerspectiveCamera(mgl64.Vec3(cfg.Camera.Position), cfg.Camera.FovDeg, w, h)
	cam.Orbit(gestureYaw, gesturePitch)
	picker := scene.NewRayPicker(cube, cam)

	press := cam.PixelToNDC(from[0], from[1])
	release := cam.PixelToNDC(to[0], to[1])

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Camera:  (%.2f, %.2f, %.2f)\n", cam.Position()[0], cam.Position()[1], cam.Position()[2])
	if id, ok := picker.Pick(press); ok {
		s := cube.Sticker(id)
		fmt.Fprintf(out, "Sticker: %d %s at %v facing %s\n", id, s.Color().Name(), s.Position(), s.Face())
	} else {
		fmt.Fprintln(out, "Sticker: none (background drag)")
	}

	r := twisty.NewResolver(cube, cam, picker, cfg.GestureTolerance)
	r.Press(press)
	m, ok := r.Drag(release)
	r.Release()
	if !ok {
		fmt.Fprintln(out, "Move:    none (drag too short)")
		return nil
	}
	fmt.Fprintf(out, "Move:    %s\n", m.Notation())

	if err := cube.Apply(m); err != nil {
		return err
	}
	fmt.Fprintf(out, "State:   %s\n", cube.Serialize())
	return nil
}

func parsePixel(s string) ([2]float64, error) {
	var p [2]float64
	if _, err := fmt.Sscanf(s, "%g,%g", &p[0], &p[1]); err != nil {
		return p, fmt.Errorf("invalid pixel position %q: want x,y", s)
	}
	return p, nil
}
