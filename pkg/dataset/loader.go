// Package dataset reads GeoNames city dumps into records for the suggestion engine.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/charmbracelet/log"
)

// GeoNames column positions (0-indexed).
const (
	colName       = 1
	colLatitude   = 4
	colLongitude  = 5
	colCountry    = 8
	colAdmin1     = 10
	colPopulation = 14

	minColumns = colPopulation + 1

	// alternate names make some rows long
	maxLineSize = 1 << 20
)

var ErrTooFewColumns = errors.New("too few columns")

// ParseError reports a row that could not be turned into a record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader turns tab separated GeoNames rows into records named
// "City, Region, Country".
type Loader struct {
	// Regions maps admin1 codes to region names; unknown codes are kept verbatim.
	Regions map[string]string
	// Countries maps country codes to display names; unknown codes are kept verbatim.
	Countries map[string]string
	// SkipHeader drops the first line.
	SkipHeader bool
}

// NewLoader creates a loader using the default region table and skipping the header line.
func NewLoader() *Loader {
	return &Loader{
		Regions:    DefaultRegions(),
		SkipHeader: true,
	}
}

// LoadFile reads every record from the file at path.
func (l *Loader) LoadFile(path string) ([]geo.Record, error) {
	if err := ValidateFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	records, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	log.Debugf("Loaded %d records from %s", len(records), path)
	return records, nil
}

// Read parses every row from r. The first malformed row stops the load.
func (l *Loader) Read(r io.Reader) ([]geo.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []geo.Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 && l.SkipHeader {
			continue
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := l.parseRow(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return records, nil
}

// parseRow builds a record from one tab separated row.
func (l *Loader) parseRow(line string) (geo.Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minColumns {
		return geo.Record{}, fmt.Errorf("%w: got %d, want at least %d", ErrTooFewColumns, len(fields), minColumns)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(fields[colLatitude]), 64)
	if err != nil {
		return geo.Record{}, fmt.Errorf("invalid latitude: %w", err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(fields[colLongitude]), 64)
	if err != nil {
		return geo.Record{}, fmt.Errorf("invalid longitude: %w", err)
	}
	population, err := strconv.ParseInt(strings.TrimSpace(fields[colPopulation]), 10, 64)
	if err != nil {
		return geo.Record{}, fmt.Errorf("invalid population: %w", err)
	}

	rec := geo.Record{
		Name:       l.FullName(fields[colName], fields[colAdmin1], fields[colCountry]),
		Latitude:   latitude,
		Longitude:  longitude,
		Population: population,
	}
	if strings.TrimSpace(fields[colName]) == "" {
		return geo.Record{}, geo.ErrEmptyName
	}
	if err := rec.Validate(); err != nil {
		return geo.Record{}, err
	}
	return rec, nil
}

// FullName joins a city with its resolved region and country. Fields are used
// exactly as they appear in the row; codes missing from a table pass through.
func (l *Loader) FullName(city, admin1, country string) string {
	return city + ", " + lookup(l.Regions, admin1) + ", " + lookup(l.Countries, country)
}
