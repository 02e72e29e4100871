package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging and overlays")
	flagFPS      = flag.Int("fps", 0, "Target frames per second")
	flagFOV      = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagFar      = flag.Float64("far", 0, "Far draw distance")
	flagSnapshot = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	flagLogFile  = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SnapshotPath returns the PNG path requested via --snapshot, or "".
func SnapshotPath() string {
	return *flagSnapshot
}

// Models returns the positional arguments, which name model files to load.
func Models() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowNormals = true
	}
	if *flagFPS > 0 {
		cfg.Graphics.FPS = *flagFPS
	}
	if *flagFOV > 0 {
		cfg.Camera.FOV = *flagFOV
	}
	if *flagFar > 0 {
		cfg.Camera.Far = *flagFar
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if args := Models(); len(args) > 0 {
		cfg.Scene.Models = args
	}
}
