package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"esensor/internal/device"
	"esensor/internal/utils"
)

const DefaultAppName = "esensor"
const DefaultConfigName = "config"
const DefaultPort = "/dev/ttyUSB0"
const DefaultBaud = 460800

var userHomeDir, _ = os.UserHomeDir()
var DefaultConfig = path.Join(userHomeDir, ".config/"+DefaultAppName+"/"+DefaultConfigName+".yaml")
var DefaultConfigSearchPath0 = path.Join(userHomeDir, ".config", DefaultAppName)

const DefaultConfigSearchPath1 = "/etc/" + DefaultAppName
const DefaultConfigSearchPath2 = "./"

type SerialOpt struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

type OutputOpt struct {
	// Format is "console" or "csv".
	Format string `yaml:"format"`
	// Path of the csv file; empty derives one from the device and time.
	Path string `yaml:"path"`
	// Samples bounds the session; 0 reads until interrupted.
	Samples int `yaml:"samples"`
	// Unscaled emits raw counts instead of physical units.
	Unscaled bool `yaml:"unscaled"`
}

type EsensorOpt struct {
	Serial SerialOpt `yaml:"serial"`
	// Model forces a device model; "auto" detects from PROD_ID.
	Model string `yaml:"model"`
	// NoInitCheck skips the power-on hardware error check.
	NoInitCheck bool `yaml:"no_init_check" mapstructure:"no_init_check"`
	// NoInit adopts the device's flash-backed settings instead of writing
	// configuration registers (AUTO_START setups).
	NoInit bool              `yaml:"no_init" mapstructure:"no_init"`
	Output OutputOpt         `yaml:"output"`
	IMU    device.IMUConfig  `yaml:"imu"`
	ACCL   device.ACCLConfig `yaml:"accl"`
	VIBE   device.VIBEConfig `yaml:"vibe"`
	Debug  bool              `yaml:"debug"`
}

type EsensorDesc struct {
	Opt   EsensorOpt
	Viper *viper.Viper
}

func NewEsensorDesc() EsensorDesc {
	return EsensorDesc{
		Opt:   NewEsensorOpt(),
		Viper: nil,
	}
}

func NewEsensorOpt() EsensorOpt {
	return EsensorOpt{
		Serial: SerialOpt{
			Port: DefaultPort,
			Baud: DefaultBaud,
		},
		Model: "auto",
		Output: OutputOpt{
			Format:  "console",
			Samples: 100,
		},
		IMU:   device.DefaultIMUConfig(),
		ACCL:  device.DefaultACCLConfig(),
		VIBE:  device.DefaultVIBEConfig(),
		Debug: false,
	}
}

func (o *EsensorDesc) Parse(cmd *cobra.Command) error {
	vipCfg := viper.New()
	vipCfg.SetDefault("serial.port", DefaultPort)
	vipCfg.SetDefault("serial.baud", DefaultBaud)
	vipCfg.SetDefault("model", "auto")
	vipCfg.SetDefault("output.format", "console")
	vipCfg.SetDefault("output.samples", 100)
	vipCfg.SetDefault("debug", false)

	if configFileCmd, err := cmd.Flags().GetString("config"); err == nil && configFileCmd != "" {
		vipCfg.SetConfigFile(configFileCmd)
	} else {
		configFileEnv := os.Getenv("ESENSOR_CONFIG")
		if configFileEnv != "" {
			vipCfg.SetConfigFile(configFileEnv)
		} else {
			vipCfg.SetConfigName(DefaultConfigName)
			vipCfg.SetConfigType("yaml")
			vipCfg.AddConfigPath(DefaultConfigSearchPath0)
			vipCfg.AddConfigPath(DefaultConfigSearchPath1)
			vipCfg.AddConfigPath(DefaultConfigSearchPath2)
		}
	}

	vipCfg.SetEnvPrefix(DefaultAppName)
	vipCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vipCfg.AutomaticEnv()

	_ = vipCfg.BindPFlag("serial.port", cmd.Flags().Lookup("port"))
	_ = vipCfg.BindPFlag("serial.baud", cmd.Flags().Lookup("baud"))
	_ = vipCfg.BindPFlag("model", cmd.Flags().Lookup("model"))
	_ = vipCfg.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	_ = vipCfg.BindPFlag("output.path", cmd.Flags().Lookup("output"))
	_ = vipCfg.BindPFlag("output.samples", cmd.Flags().Lookup("samples"))
	_ = vipCfg.BindPFlag("no_init", cmd.Flags().Lookup("no-init"))
	_ = vipCfg.BindPFlag("debug", cmd.Flags().Lookup("debug"))

	if err := vipCfg.ReadInConfig(); err == nil {
		log.Debugln("using config file:", vipCfg.ConfigFileUsed())
	} else {
		log.Debugln(err)
	}

	if err := vipCfg.Unmarshal(&o.Opt); err != nil {
		log.Errorln("failed to unmarshal config:", err)
		return err
	}

	o.Viper = vipCfg
	return nil
}

func (o *EsensorDesc) PostParse() {
	if o.Opt.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func (o *EsensorDesc) SaveConfig() error {
	if o.Viper == nil {
		return errors.New("viper is nil")
	}
	f, err := os.OpenFile(o.Viper.ConfigFileUsed(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w := bufio.NewWriter(f)
	s, _ := yaml.Marshal(o.Opt)
	if _, err = w.Write(s); err != nil {
		return err
	}
	return w.Flush()
}

// InitCfg prepares a configuration template for the application.
func InitCfg(cmd *cobra.Command, _ []string) error {
	printFlag, _ := cmd.Flags().GetBool("print")
	outputPath, _ := cmd.Flags().GetString("output")
	overwriteFlag, _ := cmd.Flags().GetBool("yes")

	desc := NewEsensorDesc()
	if err := desc.Parse(cmd); err != nil {
		log.Errorln(err)
		return err
	}

	if printFlag {
		configBuffer, _ := yaml.Marshal(desc.Opt)
		fmt.Println(string(configBuffer))
	} else {
		utils.DumpOption(desc.Opt, outputPath, overwriteFlag)
	}
	return nil
}
