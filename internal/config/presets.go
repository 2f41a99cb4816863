package config

// Presets are ready-made run configurations, keyed by name.
var Presets = map[string]*Config{
	"galaxy": {
		G: 1e-4, Theta: 1.1, Epsilon: 0.05, Scale: 1500, TimeStep: 1,
		Stars: 25000, Steps: 2000, SampleEvery: 20,
		Spawner: SpawnerConfig{
			Kind: "galaxy", Radius: 500, CenterMass: 1e6, Alpha: 75, MaxMass: 500,
		},
	},
	"field": {
		G: 1e-4, Theta: 1.1, Epsilon: 0.05, Scale: 1500, TimeStep: 1,
		Stars: 5000, Steps: 1000, SampleEvery: 10,
		Spawner: SpawnerConfig{
			Kind: "field", Extent: 500, Alpha: 35, MaxMass: 200,
		},
	},
	"dense": {
		G: 1e-4, Theta: 1.25, Epsilon: 0.125, Scale: 1500, TimeStep: 1,
		Stars: 50000, Steps: 500, SampleEvery: 50,
		Spawner: SpawnerConfig{
			Kind: "field", Extent: 1000, Alpha: 35, MaxMass: 200,
		},
	},
	"accurate": {
		G: 1e-4, Theta: 0.5, Epsilon: 0.05, Scale: 1500, TimeStep: 1,
		Stars: 2000, Steps: 1000, SampleEvery: 10,
		Spawner: SpawnerConfig{
			Kind: "galaxy", Radius: 400, CenterMass: 1e6, Alpha: 75, MaxMass: 500,
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
