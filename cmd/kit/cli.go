package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/cunningt/fuse-bxms-integ/pkg"
	"github.com/cunningt/fuse-bxms-integ/pkg/cfg"
	"github.com/cunningt/fuse-bxms-integ/pkg/common"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/fmtx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/pathx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/stringsx"
	"github.com/cunningt/fuse-bxms-integ/pkg/common/timex"
	"github.com/fatih/color"
	"github.com/jmespath-community/go-jmespath"
	"github.com/samber/lo"
	"github.com/segmentio/textio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type CLI struct {
	kit    *pkg.Kit
	config *cfg.Config

	cmd   *cobra.Command
	error error

	started time.Time
	ended   time.Time

	outputFormat   string
	outputBuffer   *bytes.Buffer
	outputResponse *OutputResponse
}

func NewCLI(kit *pkg.Kit, config *cfg.Config) *CLI {
	result := new(CLI)

	result.kit = kit
	result.config = config

	result.outputFormat = fmtx.Text
	result.outputBuffer = bytes.NewBufferString("")
	result.outputResponse = outputResponseDefault()
	result.cmd = result.rootCmd()

	return result
}

// OutputResponse defines a structure of data to be printed
type OutputResponse struct {
	Msg     string         `yaml:"msg" json:"msg"`
	Failed  bool           `yaml:"failed" json:"failed"`
	Changed bool           `yaml:"changed" json:"changed"`
	Log     string         `yaml:"log" json:"log"`
	Data    map[string]any `yaml:"data" json:"data"`
	Ended   time.Time      `yaml:"ended" json:"ended"`
	Elapsed time.Duration  `yaml:"elapsed" json:"elapsed"`
}

func outputResponseDefault() *OutputResponse {
	return &OutputResponse{
		Msg:     "",
		Failed:  false,
		Changed: false,
		Log:     "",
		Data:    map[string]any{},
	}
}

func (c *CLI) Exec() {
	c.error = c.cmd.Execute()
	if c.error != nil {
		os.Exit(1)
	}
}

func (c *CLI) configure() {
	c.config.ConfigureLogger()
	c.configureOutput()
	c.started = time.Now()
}

// outputValue selects single response data entry to be printed as plain text
func (c *CLI) outputValue() string {
	return c.config.Values().Output.Value
}

func (c *CLI) configureOutput() {
	ov := c.config.Values().Output
	c.outputFormat = strings.ReplaceAll(ov.Format, "yaml", "yml")
	if c.outputValue() != "" {
		c.outputFormat = fmtx.Text
	}
	if !lo.Contains(cfg.OutputFormats(), c.outputFormat) {
		log.Fatalf("unsupported CLI output format '%s'; supported ones are: %s", c.outputFormat, strings.Join(cfg.OutputFormats(), ", "))
	}
	color.NoColor = color.NoColor || ov.NoColor

	switch c.outputFormat {
	case fmtx.Text:
		return
	case fmtx.None:
		c.redirectOutput(c.openOutputFile(ov.File))
	default:
		// buffered log lands in response envelope
		c.redirectOutput(io.MultiWriter(c.outputBuffer, c.openOutputFile(ov.File)))
	}
}

func (c *CLI) redirectOutput(writer io.Writer) {
	c.kit.SetOutput(writer)
	log.SetOutput(writer)
}

func (c *CLI) openOutputFile(path string) *os.File {
	if err := pathx.Ensure(filepath.Dir(path)); err != nil {
		log.Fatalf("cannot create dir for output file '%s': %s", path, err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("cannot open output file '%s': %s", path, err)
	}
	return file
}

// context is cancelled on interrupt so that e.g. running container gets terminated
func (c *CLI) context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func (c *CLI) elapsed() time.Duration {
	return c.ended.Sub(c.started)
}

// Exit reads response data then prints currently captured output then exits app with proper status code
func (c *CLI) exit() {
	c.ended = time.Now()
	c.outputResponse.Ended = c.ended
	c.outputResponse.Elapsed = c.elapsed()
	c.outputResponse.Log = c.outputBuffer.String()
	c.queryOutput()

	switch {
	case c.outputFormat == fmtx.None:
		c.printCommandResult()
	case c.outputFormat == fmtx.Text && c.outputValue() != "":
		c.printOutputValue()
	case c.outputFormat == fmtx.Text:
		c.printOutputText()
		c.printCommandResult()
	default:
		c.printOutputMarshaled()
	}

	if c.outputResponse.Failed {
		os.Exit(1)
	}
	os.Exit(0)
}

func (c *CLI) printCommandResult() {
	fmt.Print(fmtx.TblList("command result", [][]any{
		{"message", c.outputResponse.Msg},
		{"changed", c.outputResponse.Changed},
		{"failed", c.outputResponse.Failed},
		{"elapsed", c.outputResponse.Elapsed},
		{"ended", timex.Human(c.outputResponse.Ended)},
	}))
}

func (c *CLI) printOutputValue() {
	name := c.outputValue()
	switch name {
	case common.OutputValueNone:
		return
	case common.OutputValueAll:
		c.printOutputText()
		return
	}
	value, ok := c.outputResponse.Data[name]
	if !ok {
		fmt.Println("<undefined>")
	} else {
		fmt.Println(fmtx.MarshalText(value))
	}
}

func (c *CLI) printOutputText() {
	if len(c.outputResponse.Data) > 0 {
		c.printOutputTextIndented(textio.NewPrefixWriter(os.Stdout, ""), c.outputResponse.Data)
	}
}

func (c *CLI) printOutputTextIndented(writer *textio.PrefixWriter, value any) {
	if value == nil {
		_, _ = writer.WriteString("<nil>\n")
		return
	}
	if _, ok := value.(fmtx.TextMarshaler); ok {
		_, _ = writer.WriteString(strings.TrimSuffix(fmtx.MarshalText(value), "\n") + "\n")
		return
	}
	rv := reflect.ValueOf(value)
	switch rv.Type().Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			c.printOutputTextIndented(writer, "<empty>")
		} else {
			for i := 0; i < rv.Len(); i++ {
				c.printOutputTextIndented(writer, rv.Index(i).Interface())
			}
		}
	case reflect.Map:
		if rv.Len() == 0 {
			c.printOutputTextIndented(writer, "<empty>")
		} else {
			dw := textio.NewPrefixWriter(writer, "  ")
			keys := rv.MapKeys()
			sort.SliceStable(keys, func(k1, k2 int) bool {
				return strings.Compare(fmt.Sprintf("%v", keys[k1].Interface()), fmt.Sprintf("%v", keys[k2].Interface())) < 0
			})
			for _, k := range keys {
				_, _ = writer.WriteString(fmt.Sprintf("%s\n", k))
				c.printOutputTextIndented(dw, rv.MapIndex(k).Interface())
			}
		}
	default:
		_, _ = writer.WriteString(strings.TrimSuffix(fmtx.MarshalText(value), "\n") + "\n")
	}
}

func (c *CLI) printOutputMarshaled() {
	switch c.outputFormat {
	case fmtx.JSON:
		json, err := fmtx.MarshalJSON(c.outputResponse)
		if err != nil {
			log.Fatalf("cannot serialize CLI output to target JSON format: %s", err)
		}
		fmt.Println(json)
	case fmtx.YML:
		yml, err := fmtx.MarshalYML(c.outputResponse)
		if err != nil {
			log.Fatalf("cannot serialize CLI output to target YML format: %s", err)
		}
		fmt.Println(yml)
	}
}

func (c *CLI) Ok(message string) {
	c.Success(message, false)
}

func (c *CLI) Changed(message string) {
	c.Success(message, true)
}

func (c *CLI) Success(message string, changed bool) {
	c.outputResponse.Failed = false
	c.outputResponse.Changed = changed
	c.outputResponse.Msg = message
}

func (c *CLI) Fail(msg string) {
	c.outputResponse.Failed = true
	c.outputResponse.Msg = msg
}

func (c *CLI) Error(err error) {
	c.Fail(fmt.Sprintf("%s", err))
}

func (c *CLI) SetOutput(name string, data any) {
	c.outputResponse.Data[c.fixOutputName(name)] = data
}

func (c *CLI) fixOutputName(name string) string {
	if c.outputFormat == fmtx.YML {
		name = stringsx.SnakeCase(name)
	}
	return name
}

// queryOutput narrows response data using JMESPath expression
func (c *CLI) queryOutput() {
	query := c.config.Values().Output.Query
	if query == "" {
		return
	}
	json, err := fmtx.MarshalJSON(c.outputResponse.Data)
	if err != nil {
		c.Error(fmt.Errorf("cannot serialize output data for query '%s': %w", query, err))
		return
	}
	var data any
	if err := fmtx.UnmarshalJSON(strings.NewReader(json), &data); err != nil {
		c.Error(fmt.Errorf("cannot deserialize output data for query '%s': %w", query, err))
		return
	}
	result, err := jmespath.Search(query, data)
	if err != nil {
		c.Error(fmt.Errorf("cannot query output data using '%s': %w", query, err))
		return
	}
	c.outputResponse.Data = map[string]any{"query": result}
}
