package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// row builds a 19 column GeoNames row.
func row(id, name, lat, lon, country, admin1, population string) string {
	fields := make([]string, 19)
	fields[0] = id
	fields[1] = name
	fields[2] = name
	fields[4] = lat
	fields[5] = lon
	fields[6] = "P"
	fields[7] = "PPL"
	fields[8] = country
	fields[10] = admin1
	fields[14] = population
	fields[18] = "2024-01-01"
	return strings.Join(fields, "\t")
}

const header = "id\tname\tascii\talt_name\tlat\tlong\tfeat_class\tfeat_code\tcountry\tcc2\tadmin1\tadmin2\tadmin3\tadmin4\tpopulation\televation\tdem\ttz\tmodified_at"

func sample() string {
	return strings.Join([]string{
		header,
		row("6167865", "Toronto", "43.70011", "-79.4163", "CA", "08", "2600000"),
		row("4174757", "Tampa", "27.94752", "-82.45843", "US", "FL", "335709"),
		row("6173331", "Vancouver", "49.24966", "-123.11934", "CA", "02", "600000"),
		"",
	}, "\n")
}

func TestReadSample(t *testing.T) {
	records, err := NewLoader().Read(strings.NewReader(sample()))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, geo.Record{
		Name:       "Toronto, Ontario, CA",
		Latitude:   43.70011,
		Longitude:  -79.4163,
		Population: 2600000,
	}, records[0])
	assert.Equal(t, "Tampa, FL, US", records[1].Name)
	assert.Equal(t, "Vancouver, British Columbia, CA", records[2].Name)
}

func TestReadWithoutHeader(t *testing.T) {
	l := NewLoader()
	l.SkipHeader = false

	body := row("1", "Calgary", "51.05011", "-114.08529", "CA", "01", "1019942")
	records, err := l.Read(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Calgary, Alberta, CA", records[0].Name)
}

func TestInjectedTables(t *testing.T) {
	l := &Loader{
		Regions:    map[string]string{"FL": "Florida"},
		Countries:  map[string]string{"US": "USA", "CA": "Canada"},
		SkipHeader: true,
	}

	records, err := l.Read(strings.NewReader(sample()))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Toronto, 08, Canada", records[0].Name)
	assert.Equal(t, "Tampa, Florida, USA", records[1].Name)
}

func TestFullNameKeepsRawFields(t *testing.T) {
	l := NewLoader()

	assert.Equal(t, "Toronto, Ontario, CA", l.FullName("Toronto", "08", "CA"))
	assert.Equal(t, " Toronto , 08 , CA", l.FullName(" Toronto ", "08 ", "CA"))
	assert.Equal(t, "Nowhere, ZZ, XX", l.FullName("Nowhere", "ZZ", "XX"))
}

func TestMergeRegions(t *testing.T) {
	base := DefaultRegions()
	merged := MergeRegions(base, map[string]string{"08": "ON", "FL": "Florida"})

	assert.Equal(t, "ON", merged["08"])
	assert.Equal(t, "Florida", merged["FL"])
	assert.Equal(t, "Alberta", merged["01"])
	assert.Equal(t, "Ontario", base["08"], "base table must stay untouched")
	assert.Equal(t, "Ontario", DefaultRegions()["08"])
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"too few columns", "1\tToronto\t43.7", ErrTooFewColumns},
		{"bad latitude", row("1", "Toronto", "north", "-79.4", "CA", "08", "1"), nil},
		{"bad population", row("1", "Toronto", "43.7", "-79.4", "CA", "08", "many"), nil},
		{"latitude out of range", row("1", "Toronto", "143.7", "-79.4", "CA", "08", "1"), geo.ErrLatitudeRange},
		{"longitude out of range", row("1", "Toronto", "43.7", "-279.4", "CA", "08", "1"), geo.ErrLongitudeRange},
		{"negative population", row("1", "Toronto", "43.7", "-79.4", "CA", "08", "-5"), geo.ErrNegativePopulation},
		{"empty name", row("1", " ", "43.7", "-79.4", "CA", "08", "5"), geo.ErrEmptyName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := header + "\n" + row("2", "Tampa", "27.9", "-82.4", "US", "FL", "1") + "\n" + tc.line + "\n"
			_, err := NewLoader().Read(strings.NewReader(body))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, 3, parseErr.Line)
			assert.Contains(t, err.Error(), "line 3")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestReadCRLF(t *testing.T) {
	body := strings.ReplaceAll(sample(), "\n", "\r\n")
	records, err := NewLoader().Read(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(600000), records[2].Population)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cities_canada-usa.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sample()), 0o644))

	records, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadFileRejected(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader().LoadFile(filepath.Join(dir, "missing.tsv"))
	assert.Error(t, err)

	csv := filepath.Join(dir, "cities.csv")
	require.NoError(t, os.WriteFile(csv, []byte(sample()), 0o644))
	_, err = NewLoader().LoadFile(csv)
	assert.ErrorContains(t, err, "unsupported extension")

	empty := filepath.Join(dir, "empty.tsv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = NewLoader().LoadFile(empty)
	assert.ErrorContains(t, err, "too small")

	_, err = NewLoader().LoadFile(dir)
	assert.ErrorContains(t, err, "directory")
}

func TestDetectFileFormat(t *testing.T) {
	assert.Equal(t, FormatTSV, DetectFileFormat("data/cities.TSV"))
	assert.Equal(t, FormatText, DetectFileFormat("cities1000.txt"))
	assert.Equal(t, FormatUnknown, DetectFileFormat("cities.zip"))
}

func TestLoadedRecordsFeedEngine(t *testing.T) {
	body := sample() + "\n" + row("9", "Toronto", "0", "0", "CA", "08", "1")
	records, err := NewLoader().Read(strings.NewReader(body))
	require.NoError(t, err)

	e := suggest.New(records)
	got, err := e.SuggestByPopulation("T")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Toronto, Ontario, CA", got[0].Name)
	assert.Equal(t, 43.70011, got[0].Latitude, "first Toronto row wins")
	assert.Equal(t, 1, e.Stats()["duplicates"])
}
