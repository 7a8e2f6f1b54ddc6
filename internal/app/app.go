// Package app wires configuration, transport, and the device driver into the
// esensor command line application.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"esensor/internal/config"
	"esensor/internal/device"
	"esensor/internal/logger"
	"esensor/internal/model"
	"esensor/internal/transport"
)

type MainApp interface {
	PrepareRun() MainApp
	Run(class model.Class) error
	ProbeSensor() error
	CheckSensor() error
	DumpRegisters() error
	GetOpt() *config.EsensorOpt
	SetOpt(*config.EsensorOpt)
}

type mainApp struct {
	name string
	cmd  *cobra.Command
	args []string
	opt  *config.EsensorOpt
}

func NewMainApp(cmd *cobra.Command, args []string) MainApp {
	return &mainApp{
		cmd:  cmd,
		args: args,
	}
}

func (a *mainApp) PrepareRun() MainApp {
	desc := config.NewEsensorDesc()
	if err := desc.Parse(a.cmd); err != nil {
		log.Errorln(err)
		os.Exit(1)
		return nil
	}
	desc.PostParse()
	a.opt = &desc.Opt
	a.name = config.DefaultAppName
	return a
}

func (a *mainApp) GetOpt() *config.EsensorOpt { return a.opt }

func (a *mainApp) SetOpt(opt *config.EsensorOpt) { a.opt = opt }

// open brings up the serial link and identifies the device.
func (a *mainApp) open() (*device.Device, *transport.SerialPort, error) {
	port, err := transport.OpenSerial(a.opt.Serial.Port, a.opt.Serial.Baud)
	if err != nil {
		return nil, nil, err
	}
	dev, err := device.Open(port, device.Options{
		Model:       a.opt.Model,
		NoInitCheck: a.opt.NoInitCheck,
	})
	if err != nil {
		_ = port.Close()
		return nil, nil, err
	}
	return dev, port, nil
}

func (a *mainApp) newWriter(dev *device.Device) (logger.SampleWriter, func(), error) {
	out := a.opt.Output
	if out.Format != "csv" {
		return logger.NewConsoleWriter(os.Stdout, out.Unscaled), func() {}, nil
	}
	path := out.Path
	if path == "" {
		path = fmt.Sprintf("%s_%s.csv",
			strings.ToLower(dev.Model().Name), time.Now().Format("20060102_150405"))
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	log.Infoln("logging to", path)
	return logger.NewCSVWriter(f, out.Unscaled), func() { _ = f.Close() }, nil
}

// Run executes one logging session: configure, enter SAMPLING mode, stream
// the requested number of samples, and return to CONFIG mode.
func (a *mainApp) Run(class model.Class) error {
	dev, port, err := a.open()
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	var cfg device.Settings
	switch class {
	case model.ClassIMU:
		cfg = a.opt.IMU
	case model.ClassACCL:
		cfg = a.opt.ACCL
	case model.ClassVIBE:
		cfg = a.opt.VIBE
	default:
		return fmt.Errorf("app: unknown device class %v", class)
	}
	if a.opt.NoInit {
		err = dev.AdoptConfig(cfg)
	} else {
		err = dev.SetConfig(cfg)
	}
	if err != nil {
		return err
	}

	w, done, err := a.newWriter(dev)
	if err != nil {
		return err
	}
	defer done()
	if err := w.WriteHeader(dev.Info(), dev.Status()); err != nil {
		return err
	}

	if err := dev.Goto(device.Sampling); err != nil {
		return err
	}
	defer func() {
		if err := dev.Goto(device.Config); err != nil {
			log.Warnln("return to config mode:", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limit := a.opt.Output.Samples
	for n := 0; limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			log.Infoln("interrupted")
			return w.Close()
		default:
		}
		sample, err := dev.ReadSample()
		var chk *device.ChecksumError
		var proto *device.ProtocolError
		switch {
		case err == nil:
		case errors.As(err, &chk):
			log.Warnln("checksum mismatch, dropping sample:", err)
			continue
		case errors.As(err, &proto):
			log.Warnln("malformed burst, resynchronized:", err)
			continue
		default:
			_ = w.Close()
			return err
		}
		if err := w.Write(sample); err != nil {
			return err
		}
	}
	return w.Close()
}

// ProbeSensor scans the machine's serial ports for responding devices.
func (a *mainApp) ProbeSensor() error {
	ports := listSerialPorts()
	if a.opt.Serial.Port != "" {
		ports = append([]string{a.opt.Serial.Port}, ports...)
	}
	seen := map[string]bool{}
	found := 0
	for _, name := range ports {
		if seen[name] {
			continue
		}
		seen[name] = true
		info, ok := probePort(name, a.opt.Serial.Baud)
		if ok {
			fmt.Printf("- %s: %s\n", name, info)
			found++
		}
	}
	if found == 0 {
		return errors.New("no devices found")
	}
	log.Infof("found %d device(s)", found)
	return nil
}

func probePort(name string, baud int) (string, bool) {
	port, err := transport.OpenSerial(name, baud)
	if err != nil {
		return "", false
	}
	defer func() { _ = port.Close() }()
	dev, err := device.Open(port, device.Options{SyncRetries: 2, NoInitCheck: true})
	if err != nil {
		log.Debugf("%s: %v", name, err)
		return "", false
	}
	return dev.Info().String(), true
}

// listSerialPorts names the platform's serial port device nodes.
func listSerialPorts() []string {
	var ports []string
	switch runtime.GOOS {
	case "windows":
		for i := 1; i <= 32; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
	case "linux":
		files, err := os.ReadDir("/dev")
		if err != nil {
			log.Errorln("error reading /dev:", err)
			return nil
		}
		for _, file := range files {
			name := file.Name()
			if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
				ports = append(ports, "/dev/"+name)
			}
		}
	case "darwin":
		files, err := os.ReadDir("/dev")
		if err != nil {
			log.Errorln("error reading /dev:", err)
			return nil
		}
		for _, file := range files {
			if strings.HasPrefix(file.Name(), "tty.") {
				ports = append(ports, "/dev/"+file.Name())
			}
		}
	default:
		log.Warnf("unsupported platform: %s", runtime.GOOS)
	}
	return ports
}

// CheckSensor runs the device self test and flash test.
func (a *mainApp) CheckSensor() error {
	dev, port, err := a.open()
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	log.Infoln("running self test")
	if err := dev.DoSelfTest(); err != nil {
		return err
	}
	log.Infoln("self test passed")

	log.Infoln("running flash test")
	if err := dev.DoFlashTest(); err != nil {
		return err
	}
	log.Infoln("flash test passed")
	return nil
}

// DumpRegisters prints every register in the model's dump list.
func (a *mainApp) DumpRegisters() error {
	dev, port, err := a.open()
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	rows, err := dev.RegDump()
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Printf("%-16s 0x%04X\n", row.Name, row.Value)
	}
	return nil
}
