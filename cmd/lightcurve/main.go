package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ChristopherRabotin/occult"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"
)

// This code effectively only reads the scenario file and runs the campaign.

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "campaign scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	// Read campaign parameters
	name := viper.GetString("campaign.name")
	if name == "" {
		name = scenario
	}
	start := viper.GetFloat64("campaign.start")
	end := viper.GetFloat64("campaign.end")
	samples := viper.GetInt("campaign.samples")
	if samples < 1 {
		log.Fatalf("campaign.samples must be at least 1, got %d", samples)
	}
	if end <= start {
		log.Fatalf("campaign window is empty: start=%f end=%f", start, end)
	}
	times := make([]float64, samples)
	if samples == 1 {
		times[0] = (start + end) / 2
	} else {
		step := (end - start) / float64(samples-1)
		for i := range times {
			times[i] = start + float64(i)*step
		}
	}
	if verbose {
		log.Printf("[conf] %d samples over [%f, %f] days\n", samples, start, end)
	}

	// Read central body
	central := occult.NewCentral()
	if viper.IsSet("central.radius") {
		central.Radius = viper.GetFloat64("central.radius")
	}
	if viper.IsSet("central.mass") {
		central.Mass = viper.GetFloat64("central.mass")
	}
	central.Surface = surfaceFromConf("central")

	// Read bodies
	var bodies []occult.Body
	for bodyNo := 0; viper.IsSet(fmt.Sprintf("bodies.%d", bodyNo)); bodyNo++ {
		pre := fmt.Sprintf("bodies.%d.", bodyNo)
		body := occult.NewBody(viper.GetFloat64(pre+"radius"), viper.GetFloat64(pre+"mass"), viper.GetFloat64(pre+"period"))
		body.TTransit = viper.GetFloat64(pre + "ttransit")
		if viper.IsSet(pre + "inc") {
			body.Inc = occult.Deg2rad(viper.GetFloat64(pre + "inc"))
		}
		body.Ecc = viper.GetFloat64(pre + "ecc")
		body.Omega = occult.Deg2rad(viper.GetFloat64(pre + "argPeri"))
		body.Surface = surfaceFromConf(fmt.Sprintf("bodies.%d", bodyNo))
		bodies = append(bodies, body)
		if verbose {
			log.Printf("added: %+v", body)
		}
	}

	campaign := occult.NewCampaign(name, occult.System{Central: central, Bodies: bodies}, times)
	campaign.Workers = viper.GetInt("campaign.workers")
	conf := occult.ExportConfig{Filename: name, AsCSV: true, Timestamp: viper.GetBool("export.timestamp")}
	if viper.IsSet("export.csv") {
		conf.AsCSV = viper.GetBool("export.csv")
	}
	curves, err := campaign.Export(conf)
	if err != nil {
		log.Fatalf("campaign failed: %s", err)
	}
	// Summarize the depth of each light curve.
	for col := 0; col < 1+len(bodies); col++ {
		c := mat.Col(nil, col, curves)
		lo, hi := c[0], c[0]
		for _, v := range c {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		log.Printf("column %d: min=%.9f max=%.9f", col, lo, hi)
	}
}

// surfaceFromConf builds a surface from the inline keys of the given
// section, or fetches it from the catalog when `surface` is set. It returns
// nil if the section defines no surface at all.
func surfaceFromConf(section string) *occult.Surface {
	if name := viper.GetString(section + ".surface"); name != "" {
		s, err := occult.SurfaceFromString(name)
		if err != nil {
			log.Fatalf("%s: %s", section, err)
		}
		return &s
	}
	if !viper.IsSet(section+".map") && !viper.IsSet(section+".limbdark") {
		return nil
	}
	var y *occult.Harmonics
	if mapTxt := viper.GetString(section + ".map"); mapTxt != "" {
		var err error
		y, err = occult.NewHarmonicsFromDense(parseFloats(mapTxt))
		if err != nil {
			log.Fatalf("%s.map: %s", section, err)
		}
	}
	s := occult.NewSurface(y)
	if viper.IsSet(section + ".limbdark") {
		s.U = parseFloats(viper.GetString(section + ".limbdark"))
	}
	if viper.IsSet(section + ".amplitude") {
		s.Amplitude = viper.GetFloat64(section + ".amplitude")
	}
	if viper.IsSet(section + ".inc") {
		s.Inc = occult.Deg2rad(viper.GetFloat64(section + ".inc"))
	}
	if viper.IsSet(section + ".obl") {
		s.Obl = occult.Deg2rad(viper.GetFloat64(section + ".obl"))
	}
	s.Period = viper.GetFloat64(section + ".rotperiod")
	return s
}

// parseFloats parses a whitespace separated list of numbers.
func parseFloats(txt string) []float64 {
	fields := strings.Fields(txt)
	vals := make([]float64, len(fields))
	for i, field := range fields {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			log.Fatalf("could not parse `%s`: %s", field, err)
		}
		vals[i] = val
	}
	return vals
}
