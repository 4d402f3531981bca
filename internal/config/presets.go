package config

var Presets = map[string]*Config{
	"fireflies": {
		Swarm:     SwarmConfig{Size: 13, Coupling: 1.0, FreqMin: 1.0, FreqMax: 3.0, OriginX: 200, OriginY: 200},
		Dt:        0.02,
		Duration:  30.0,
		FrameRate: 30,
	},
	"flash-mob": {
		Swarm:     SwarmConfig{Size: 120, Coupling: 2.5, FreqMin: 0.5, FreqMax: 1.5, OriginX: 200, OriginY: 200},
		Dt:        0.02,
		Duration:  60.0,
		FrameRate: 30,
	},
	"metronomes": {
		Swarm:     SwarmConfig{Size: 5, Coupling: 4.0, FreqMin: 2.0, FreqMax: 2.2, OriginX: 200, OriginY: 200},
		Dt:        0.01,
		Duration:  20.0,
		FrameRate: 60,
	},
	"incoherent": {
		Swarm:     SwarmConfig{Size: 40, Coupling: 0.1, FreqMin: 0.5, FreqMax: 3.0, OriginX: 200, OriginY: 200},
		Dt:        0.02,
		Duration:  30.0,
		FrameRate: 30,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
