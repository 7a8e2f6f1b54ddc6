package cmd

import (
	"github.com/spf13/cobra"

	"esensor/internal/app"
	"esensor/internal/config"
	"esensor/internal/model"
)

var RootCmd = &cobra.Command{
	Use:   "esensor",
	Short: "logger for Epson inertial and vibration sensing devices",
	Long:  "logger for Epson inertial and vibration sensing devices",
}

func sessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "configuration file path")
	cmd.Flags().StringP("port", "p", config.DefaultPort, "serial port device")
	cmd.Flags().IntP("baud", "b", config.DefaultBaud, "serial baud rate")
	cmd.Flags().StringP("model", "m", "auto", "device model, auto detects from PROD_ID")
	cmd.Flags().String("format", "console", "output format: console or csv")
	cmd.Flags().StringP("output", "o", "", "csv output path")
	cmd.Flags().IntP("samples", "n", 100, "samples to read, 0 runs until interrupted")
	cmd.Flags().Bool("no-init", false, "adopt flash-backed AUTO_START settings, skip configuration writes")
	cmd.Flags().Bool("debug", false, "toggle debug logging")
}

func classRunE(class model.Class) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return app.NewMainApp(cmd, args).PrepareRun().Run(class)
	}
}

var IMUCmd = &cobra.Command{
	Use: "imu",
	SuggestFor: []string{
		"im", "gyro",
	},
	Short: "imu logs samples from an inertial measurement unit",
	Long: `imu configures an inertial measurement unit (G330/G354/G366/G370/G570
family) and logs burst samples. Rate, filter, delta angle/velocity,
attitude/quaternion, and output word width come from the imu block of the
configuration file, overridable by flags and ESENSOR_* environment variables.`,
	Example: `  esensor imu --port /dev/ttyUSB0 --samples 1000 --format csv`,
	RunE:    classRunE(model.ClassIMU),
}

var ACCLCmd = &cobra.Command{
	Use: "accl",
	SuggestFor: []string{
		"acc", "accel",
	},
	Short: "accl logs samples from an accelerometer",
	Long: `accl configures an accelerometer (A352 family) and logs burst samples.
The tilt mask in the accl block of the configuration swaps individual axes
to tilt angle output.`,
	Example: `  esensor accl --port /dev/ttyUSB0 --format csv -o run.csv`,
	RunE:    classRunE(model.ClassACCL),
}

var VIBECmd = &cobra.Command{
	Use: "vibe",
	SuggestFor: []string{
		"vib", "vibration",
	},
	Short: "vibe logs samples from a vibration sensor",
	Long: `vibe configures a vibration sensor (A342 family) and logs burst samples.
The output function (RAW, RMS, or peak-to-peak velocity or displacement)
comes from the vibe block of the configuration file.`,
	Example: `  esensor vibe --port /dev/ttyUSB0 --samples 0`,
	RunE:    classRunE(model.ClassVIBE),
}

var ProbeCmd = &cobra.Command{
	Use: "probe",
	SuggestFor: []string{
		"pro", "pr", "prob",
	},
	Short: "probe scans serial ports for compatible devices",
	Long: `probe scans the machine's serial ports for compatible sensing devices
and prints the product id, firmware version, and serial number of each one
that answers. Only devices running at the configured baud rate are found.`,
	Example: `  esensor probe --baud 460800`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewMainApp(cmd, args).PrepareRun().ProbeSensor()
	},
}

var CheckCmd = &cobra.Command{
	Use: "check",
	SuggestFor: []string{
		"che", "selftest",
	},
	Short:   "check runs the device self test and flash test",
	Example: `  esensor check --port /dev/ttyUSB0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewMainApp(cmd, args).PrepareRun().CheckSensor()
	},
}

var DumpCmd = &cobra.Command{
	Use: "dump",
	SuggestFor: []string{
		"du", "regdump",
	},
	Short:   "dump prints the device register map",
	Example: `  esensor dump --port /dev/ttyUSB0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewMainApp(cmd, args).PrepareRun().DumpRegisters()
	},
}

func InitCmdFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("print", false, "print config to stdout")
	cmd.Flags().BoolP("yes", "y", false, "overwrite")
	cmd.Flags().StringP("output", "o", config.DefaultConfig, "specify output path")
}

var InitCmd = &cobra.Command{
	Use: "init",
	SuggestFor: []string{
		"ini", "in",
	},
	Short: "init creates a configuration template",
	Long: `init creates a configuration template.
If --print flag is present, the configuration will be printed to stdout.
If --output / -o flag is present, the configuration will be saved to the path specified.
Otherwise init will write the configuration file to $HOME/.config/esensor/config.yaml.
If --yes / -y flag is present, an existing file will be overwritten without confirmation.
`,
	Example: `  esensor init --print
  esensor init --output /path/to/config.yaml
  esensor init -o /path/to/config.yaml -y`,
	RunE: config.InitCfg,
}

func getRootCmd() *cobra.Command {
	for _, c := range []*cobra.Command{IMUCmd, ACCLCmd, VIBECmd, ProbeCmd, CheckCmd, DumpCmd} {
		sessionFlags(c)
		RootCmd.AddCommand(c)
	}

	InitCmdFlags(InitCmd)
	RootCmd.AddCommand(InitCmd)

	return RootCmd
}

func Execute() {
	rootCmd := getRootCmd()
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
