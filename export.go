package occult

import (
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ExportConfig configures the exporting of a campaign.
type ExportConfig struct {
	Filename     string
	AsCSV        bool
	Timestamp    bool
	CSVAppend    func(t float64, fluxes []float64) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string                            // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// createFluxCSVFile returns a file which requires a defer close statement!
func createFluxCSVFile(conf ExportConfig, bodies int) (*os.File, error) {
	config := occultConfig()
	var filename string
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/lightcurve-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", config.outputDir, conf.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/lightcurve-%s.csv", config.outputDir, conf.Filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <time> <central flux> <one flux per body>.
#   Time is in days from the campaign reference epoch.
#   Fluxes are disk integrated, relative to the bare uniform disk.
time,central`, time.Now().UTC()))
	for k := 0; k < bodies; k++ {
		f.WriteString(fmt.Sprintf(",body%d", k))
	}
	if conf.CSVAppendHdr != nil {
		// Append the headers for the appended columns.
		f.WriteString("," + conf.CSVAppendHdr())
	}
	return f, nil
}

// Export runs the campaign and writes the light curves per the given
// configuration into the configured output directory. The evaluated matrix
// is returned so callers can keep working with it.
func (c *Campaign) Export(conf ExportConfig) (*mat.Dense, error) {
	out, err := c.Run()
	if err != nil {
		return nil, err
	}
	if conf.IsUseless() {
		c.logger.Log("level", "warning", "subsys", "export", "message", "nothing to export")
		return out, nil
	}
	f, err := createFluxCSVFile(conf, len(c.System.Bodies))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, cols := out.Dims()
	for i := 0; i < rows; i++ {
		asTxt := fmt.Sprintf("%.9f", c.Times[i])
		for j := 0; j < cols; j++ {
			asTxt += fmt.Sprintf(",%.9f", out.At(i, j))
		}
		if conf.CSVAppend != nil {
			asTxt += "," + conf.CSVAppend(c.Times[i], out.RawRowView(i))
		}
		if _, err := f.WriteString("\n" + asTxt); err != nil {
			return nil, err
		}
	}
	c.logger.Log("level", "notice", "subsys", "export", "status", "saved", "file", f.Name())
	return out, nil
}
