package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/fixture"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/spawn"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir string

	g        float64
	theta    float64
	epsilon  float64
	scale    float64
	timeStep float64

	stars       int
	steps       int
	seed        int64
	sampleEvery int
	spawner     string

	configFile string
	preset     string

	frameRate  int
	fixtureDir string
	trackStars int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "Barnes-Hut gravity simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "snapshot interval in steps")
	runCmd.Flags().IntVar(&trackStars, "track", 16, "number of stars to record positions for")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "generate binary benchmark fixtures",
		RunE:  genFixtures,
	}
	genCmd.Flags().StringVar(&fixtureDir, "out", "testdata", "output directory")
	genCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time tree construction and stepping",
		RunE:  benchSimulation,
	}
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot tracked star trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, genCmd, benchCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "Barnes-Hut accuracy threshold")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "distance softening")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "bounding square scale")
	cmd.Flags().Float64Var(&timeStep, "time-step", config.DefaultTimeStep, "per-step time scale")
	cmd.Flags().IntVar(&stars, "stars", config.DefaultStars, "number of stars")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&spawner, "spawner", "galaxy", "initial conditions (field|galaxy)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file, and flags, in increasing
// precedence, the same way for run and live.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		tmp := *p
		cfg = &tmp
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("g") {
		cfg.G = float32(g)
	}
	if cmd.Flags().Changed("theta") {
		cfg.Theta = float32(theta)
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Epsilon = float32(epsilon)
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = float32(scale)
	}
	if cmd.Flags().Changed("time-step") {
		cfg.TimeStep = float32(timeStep)
	}
	if cmd.Flags().Changed("stars") {
		cfg.Stars = stars
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("spawner") {
		cfg.Spawner.Kind = spawner
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func spawnStars(cfg *config.Config) []gravity.Star {
	rng := rand.New(rand.NewSource(cfg.Seed))
	dist := spawn.NewMassDistribution(cfg.Spawner.Alpha, cfg.Spawner.MaxMass)

	switch cfg.Spawner.Kind {
	case "field":
		return spawn.Field(rng, cfg.Stars, cfg.Spawner.Extent, dist)
	default:
		return spawn.Galaxy(rng, cfg.Stars, cfg.Spawner.Radius, cfg.Spawner.CenterMass, cfg.G, dist)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim := gravity.NewSimulation(spawnStars(cfg), cfg.Params())

	tracked := trackStars
	if tracked > len(sim.Stars()) {
		tracked = len(sim.Stars())
	}

	fmt.Printf("running %s simulation: %d stars, %d steps...\n", cfg.Spawner.Kind, cfg.Stars, cfg.Steps)
	start := time.Now()

	snapshots := make([]storage.Snapshot, 0, cfg.Steps/cfg.SampleEvery+1)
	for i := 0; i < cfg.Steps; i++ {
		if i%cfg.SampleEvery == 0 {
			snapshots = append(snapshots, snapshot(sim, i, tracked))
		}
		sim.Step()
	}
	snapshots = append(snapshots, snapshot(sim, cfg.Steps, tracked))

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Stars:      len(sim.Stars()),
		Steps:      cfg.Steps,
		Seed:       cfg.Seed,
		Spawner:    cfg.Spawner.Kind,
		G:          cfg.G,
		Theta:      cfg.Theta,
		Epsilon:    cfg.Epsilon,
		Scale:      cfg.Scale,
		TimeStep:   cfg.TimeStep,
		ElapsedSec: elapsed.Seconds(),
		Diagnostics: map[string]float64{
			"momentum_x":       float64(sim.Momentum().X),
			"momentum_y":       float64(sim.Momentum().Y),
			"angular_momentum": float64(sim.AngularMomentum()),
			"in_bounds":        float64(sim.InBounds()),
		},
	}

	runID, err := st.Save(meta, snapshots)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v (%.0f steps/sec)\n", elapsed, float64(cfg.Steps)/elapsed.Seconds())
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("in bounds: %d/%d\n", sim.InBounds(), len(sim.Stars()))
	return nil
}

func snapshot(sim *gravity.Simulation, step, tracked int) storage.Snapshot {
	positions := make([]gravity.Vec2, tracked)
	for i := 0; i < tracked; i++ {
		positions[i] = sim.Stars()[i].Pos()
	}
	return storage.Snapshot{Step: step, Positions: positions}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sim := gravity.NewSimulation(spawnStars(cfg), cfg.Params())
	return viz.RunLive(sim, frameRate)
}

func genFixtures(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(fixtureDir, 0755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	for _, n := range []int{1000, 5000} {
		points := make([]gravity.MassPoint, n)
		for i := range points {
			points[i] = gravity.MassPoint{
				Pos: gravity.Vec2{
					X: rng.Float32()*1000 - 500,
					Y: rng.Float32()*1000 - 500,
				},
				Mass: 1,
			}
		}

		path := filepath.Join(fixtureDir, fmt.Sprintf("stars_%dk.bin", n/1000))
		if err := fixture.Save(path, points); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d points)\n", path, n)
	}
	return nil
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(seed))
	dist := spawn.NewMassDistribution(35, 200)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARS\tBUILD\tSTEP\tSTEPS/SEC")

	for _, n := range []int{1000, 5000, 25000} {
		field := spawn.Field(rng, n, 1000, dist)
		sim := gravity.NewSimulation(field, gravity.DefaultParams())

		start := time.Now()
		sim.BuildTree()
		buildTime := time.Since(start)

		const stepCount = 20
		start = time.Now()
		for i := 0; i < stepCount; i++ {
			sim.Step()
		}
		stepTime := time.Since(start) / stepCount

		fmt.Fprintf(w, "%d\t%v\t%v\t%.1f\n",
			n, buildTime, stepTime, 1.0/stepTime.Seconds())
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPAWNER\tTIME\tSTARS\tSTEPS\tTHETA\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\t%.2fs\n",
			run.ID,
			run.Spawner,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stars,
			run.Steps,
			run.Theta,
			run.ElapsedSec,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	snapshots, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("spawner: %s\n", meta.Spawner)
	fmt.Printf("samples: %d\n\n", len(snapshots))

	tracked := len(snapshots[0].Positions)
	const maxPlots = 4
	if tracked > maxPlots {
		tracked = maxPlots
	}

	for star := 0; star < tracked; star++ {
		// radial distance from the origin over time
		data := make([]float64, len(snapshots))
		for i, snap := range snapshots {
			if star < len(snap.Positions) {
				data[i] = float64(snap.Positions[star].Len())
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("star %d: distance from origin", star)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
