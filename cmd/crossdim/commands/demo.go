package commands

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/phanxgames/crossdim"
	"github.com/phanxgames/crossdim/physics2d"
	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"
)

func newDemoCommand() *cobra.Command {
	var (
		count      int
		debug      bool
		scriptPath string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open a window with falling bodies, a rope and a tweened paddle",
		Example: `  # Run without fetching anything
  crossdim demo --no-load

  # Custom scene settings
  crossdim demo --scene scene.yaml --count 80

  # Scripted run that screenshots and exits
  crossdim demo --no-load --script run.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneCfg, err := loadSceneConfig()
			if err != nil {
				return err
			}
			cfg, err := crossdim.ConfigFromEnv()
			if err != nil {
				return err
			}
			env := crossdim.NewEnvironment()
			if noLoad {
				physics2d.InstallInto(env)
			}

			e, err := crossdim.NewFactory(env).Initialize(cmd.Context(), cfg).Wait(cmd.Context())
			if err != nil {
				return err
			}
			if !e.Ready() {
				return fmt.Errorf("2D physics unavailable, try --no-load")
			}

			s := buildDemo(e, sceneCfg, count)
			s.SetDebugMode(debug)
			if scriptPath != "" {
				script, err := loadScript(scriptPath)
				if err != nil {
					return err
				}
				if r, ok := s.Renderer().(*physics2d.Renderer); ok {
					r.SetScript(script)
				}
			}
			return physics2d.Run(cmd.Context(), s, "crossdim demo")
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 40, "number of falling bodies")
	cmd.Flags().BoolVar(&debug, "debug", false, "log frame timings")
	cmd.Flags().StringVar(&scriptPath, "script", "", "script (YAML) that clicks and drags bodies, waits, takes screenshots and quits")

	return cmd
}

func loadSceneConfig() (crossdim.SceneConfig, error) {
	if sceneConfigPath == "" {
		return crossdim.DefaultSceneConfig(), nil
	}
	data, err := os.ReadFile(sceneConfigPath)
	if err != nil {
		return crossdim.SceneConfig{}, fmt.Errorf("read scene config: %w", err)
	}
	return crossdim.LoadSceneConfig(data)
}

func loadScript(path string) (*physics2d.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return physics2d.LoadScript(data)
}

func buildDemo(e *crossdim.Engine2D, cfg crossdim.SceneConfig, count int) *crossdim.Scene {
	s := e.NewScene(cfg)
	w, h := float64(cfg.Width), float64(cfg.Height)

	ground := e.Rectangle(w/2, h-10, w, 20, crossdim.Static(), crossdim.Fill("#3d3f51"))
	left := e.Rectangle(5, h/2, 10, h, crossdim.Static(), crossdim.Fill("#3d3f51"))
	right := e.Rectangle(w-5, h/2, 10, h, crossdim.Static(), crossdim.Fill("#3d3f51"))
	s.Add(ground, left, right)

	palette := []string{"#e94560", "#f5a623", "#50e3c2", "#b8e986", "#4a90e2"}
	bodies := make([]*crossdim.RigidBody, 0, count)
	for i := range count {
		x := 40 + rand.Float64()*(w-80)
		y := -rand.Float64() * h
		fill := crossdim.Fill(palette[i%len(palette)])
		if i%2 == 0 {
			bodies = append(bodies, e.Circle(x, y, 10+rand.Float64()*15, fill))
		} else {
			bodies = append(bodies, e.Rectangle(x, y, 20+rand.Float64()*20, 20+rand.Float64()*20, fill))
		}
	}
	s.Add(bodies...)

	bob := e.Circle(w/2, 120, 18, crossdim.Fill("#ffffff"))
	rope := e.Rope(
		crossdim.RopeBodies(nil, bob),
		crossdim.RopePoints(crossdim.Vector2{X: w / 2, Y: 20}, crossdim.Vector2{}),
		crossdim.RopeStiffness(0.05),
	)
	s.Add(bob, rope)

	paddle := e.Rectangle(80, h/2, 120, 12, crossdim.Kinematic(), crossdim.Fill("#9b59b6"))
	s.Add(paddle)
	s.Animate(crossdim.TweenBody(paddle, w-80, h/2, 4, ease.InOutSine))

	return s
}
