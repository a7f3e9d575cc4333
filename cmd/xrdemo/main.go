package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"xrpointer/internal/config"
	"xrpointer/internal/engine"
	"xrpointer/internal/game"
	"xrpointer/internal/logging"
	"xrpointer/internal/world"
	"xrpointer/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
)

var (
	configFile string
	sceneFile  string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	configFile, sceneFile, logLevel = "", "", ""

	rootCmd := &cobra.Command{
		Use:           "xrdemo",
		Short:         "VR pointer, teleport and snap turn playground",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the desktop demo window",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
	runCmd.Flags().StringVar(&sceneFile, "scene", "", "scene file (json), overrides the config")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "log level, overrides the config")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	})

	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "inspect scene files",
	}
	sceneCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the built-in demo scene",
		Args:  cobra.ExactArgs(1),
		RunE:  initScene,
	})
	sceneCmd.AddCommand(&cobra.Command{
		Use:   "dump [path]",
		Short: "list the objects of each pointer role",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpScene,
	})
	probeCmd := &cobra.Command{
		Use:   "probe [x] [z]",
		Short: "point straight down at x,z and print what the pointer would target",
		Args:  cobra.ExactArgs(2),
		RunE:  probeScene,
	}
	probeCmd.Flags().StringVar(&sceneFile, "scene", "", "scene file (json), default is the built-in scene")
	sceneCmd.AddCommand(probeCmd)

	rootCmd.AddCommand(runCmd, configCmd, sceneCmd)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sceneFile != "" {
		cfg.Scene = sceneFile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	g, err := game.New(cfg, log)
	if err != nil {
		return fmt.Errorf("start demo: %w", err)
	}
	g.Run()
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.Save(args[0], config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func initScene(cmd *cobra.Command, args []string) error {
	if err := world.DefaultScene().Save(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func dumpScene(cmd *cobra.Command, args []string) error {
	sf, err := world.ReadSceneFile(args[0])
	if err != nil {
		return err
	}
	roles := sf.Roles()
	names := make([]string, 0, len(roles))
	for role := range roles {
		names = append(names, role)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLE\tCOUNT\tOBJECTS")
	for _, role := range names {
		fmt.Fprintf(w, "%s\t%d\t%v\n", role, len(roles[role]), roles[role])
	}
	return w.Flush()
}

func probeScene(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	z, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("z: %w", err)
	}

	w := world.New(nil)
	if sceneFile != "" {
		err = w.LoadScene(sceneFile)
	} else {
		err = w.Load(world.DefaultScene())
	}
	if err != nil {
		return err
	}

	ray := engine.Ray{
		Origin:    mgl32.Vec3{float32(x), 50, float32(z)},
		Direction: mgl32.Vec3{0, -1, 0},
		Far:       engine.Unbounded,
	}
	res := xr.NewResolver(w.Raycaster).Resolve(ray, w.CollisionObjects(), w.InteractableObjects(), w.TeleportTargetObjects())
	out := cmd.OutOrStdout()
	if !res.Found() {
		fmt.Fprintln(out, "none")
		return nil
	}
	p := res.Hit.Point
	fmt.Fprintf(out, "%s %s at (%.2f, %.2f, %.2f)\n", res.Kind, res.Hit.Object.Name, p.X(), p.Y(), p.Z())
	return nil
}
