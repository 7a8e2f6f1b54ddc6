// Package logger formats decoded sensor samples for a logging session,
// either as CSV rows or as aligned console output.
package logger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"esensor/internal/device"
	"esensor/internal/regif"
)

// SampleWriter receives one header, then a row per sample.
type SampleWriter interface {
	WriteHeader(info regif.Info, state device.Snapshot) error
	Write(sample device.Sample) error
	// Close writes the session trailer.
	Close() error
}

// flag-style fields print as hex, counters as plain integers, measurements
// as fixed precision floats.
func formatScaled(name string, raw int64, scaled float64) string {
	switch {
	case name == "ndflags" || name == "chksm":
		return fmt.Sprintf("%04X", uint16(raw))
	case name == "counter" || name == "exi-alrm-cnt":
		return strconv.FormatInt(raw, 10)
	default:
		return strconv.FormatFloat(scaled, 'f', 8, 64)
	}
}

func formatRaw(name string, raw int64) string {
	if name == "ndflags" || name == "chksm" {
		return fmt.Sprintf("%04X", uint16(raw))
	}
	return strconv.FormatInt(raw, 10)
}

// CSVWriter logs a session to one CSV stream with identity and configuration
// rows up front and a sample count trailer.
type CSVWriter struct {
	w        *csv.Writer
	fields   []string
	unscaled bool
	count    int
	now      func() time.Time
}

func NewCSVWriter(w io.Writer, unscaled bool) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), unscaled: unscaled, now: time.Now}
}

func (c *CSVWriter) WriteHeader(info regif.Info, state device.Snapshot) error {
	c.fields = state.Fields
	rows := [][]string{
		{"#Log created " + c.now().Format(time.RFC3339)},
		{"#PROD_ID=" + info.ProdID, "#VERSION=" + info.Version, "#SERIAL_NUM=" + info.Serial},
		{"#MODEL=" + state.Model, "#CLASS=" + state.Class},
	}
	if c.unscaled {
		rows = append(rows, []string{"#Raw counts, no scale factor applied"})
	}
	rows = append(rows, append([]string{"sample"}, state.Fields...))
	for _, row := range rows {
		if err := c.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) Write(sample device.Sample) error {
	row := make([]string, 0, len(sample.Fields)+1)
	row = append(row, strconv.Itoa(c.count))
	for i, name := range sample.Fields {
		if c.unscaled {
			row = append(row, formatRaw(name, sample.Raw[i]))
		} else {
			row = append(row, formatScaled(name, sample.Raw[i], sample.Scaled[i]))
		}
	}
	c.count++
	return c.w.Write(row)
}

func (c *CSVWriter) Close() error {
	if err := c.w.Write([]string{"#Log end " + c.now().Format(time.RFC3339)}); err != nil {
		return err
	}
	if err := c.w.Write([]string{"#Sample count", strconv.Itoa(c.count)}); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// ConsoleWriter prints samples as fixed-width columns.
type ConsoleWriter struct {
	w        io.Writer
	fields   []string
	unscaled bool
	count    int
}

func NewConsoleWriter(w io.Writer, unscaled bool) *ConsoleWriter {
	return &ConsoleWriter{w: w, unscaled: unscaled}
}

func (c *ConsoleWriter) WriteHeader(info regif.Info, state device.Snapshot) error {
	if _, err := fmt.Fprintf(c.w, "%s  model=%s class=%s\n", info, state.Model, state.Class); err != nil {
		return err
	}
	cols := make([]string, 0, len(state.Fields)+1)
	cols = append(cols, fmt.Sprintf("%8s", "sample"))
	for _, f := range state.Fields {
		cols = append(cols, fmt.Sprintf("%14s", f))
	}
	c.fields = state.Fields
	_, err := fmt.Fprintln(c.w, strings.Join(cols, " "))
	return err
}

func (c *ConsoleWriter) Write(sample device.Sample) error {
	cols := make([]string, 0, len(sample.Fields)+1)
	cols = append(cols, fmt.Sprintf("%8d", c.count))
	for i, name := range sample.Fields {
		var cell string
		if c.unscaled {
			cell = formatRaw(name, sample.Raw[i])
		} else {
			cell = formatScaled(name, sample.Raw[i], sample.Scaled[i])
		}
		cols = append(cols, fmt.Sprintf("%14s", cell))
	}
	c.count++
	_, err := fmt.Fprintln(c.w, strings.Join(cols, " "))
	return err
}

func (c *ConsoleWriter) Close() error {
	_, err := fmt.Fprintf(c.w, "%d samples\n", c.count)
	return err
}
