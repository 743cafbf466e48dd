package districts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumns is returned when a CSV header lacks the required
// State/Number/PVI columns.
var ErrMissingColumns = errors.New("csv missing required columns")

// stateAbbreviations maps full state names to postal abbreviations.
var stateAbbreviations = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT",
	"Delaware": "DE", "Florida": "FL", "Georgia": "GA", "Hawaii": "HI",
	"Idaho": "ID", "Illinois": "IL", "Indiana": "IN", "Iowa": "IA",
	"Kansas": "KS", "Kentucky": "KY", "Louisiana": "LA", "Maine": "ME",
	"Maryland": "MD", "Massachusetts": "MA", "Michigan": "MI",
	"Minnesota": "MN", "Mississippi": "MS", "Missouri": "MO",
	"Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM",
	"New York": "NY", "North Carolina": "NC", "North Dakota": "ND",
	"Ohio": "OH", "Oklahoma": "OK", "Oregon": "OR", "Pennsylvania": "PA",
	"Rhode Island": "RI", "South Carolina": "SC", "South Dakota": "SD",
	"Tennessee": "TN", "Texas": "TX", "Utah": "UT", "Vermont": "VT",
	"Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY", "District of Columbia": "DC",
}

// ParsePVI parses a Cook Partisan Voting Index string: "R+27" is +27,
// "D+5" is -5, and anything else ("EVEN", blanks) is 0.
func ParsePVI(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "R+"):
		v, err := strconv.ParseFloat(s[2:], 64)
		if err != nil {
			return 0
		}
		return v
	case strings.HasPrefix(s, "D+"):
		v, err := strconv.ParseFloat(s[2:], 64)
		if err != nil {
			return 0
		}
		return -v
	default:
		return 0
	}
}

// FormatDistrict builds the "{abbrev}-{number}" identifier from a full
// state name and a district number. At-large districts ("AL") become
// "01" and numeric districts are zero-padded to two digits.
func FormatDistrict(stateName, number string) string {
	abbrev, ok := stateAbbreviations[stateName]
	if !ok {
		abbrev = strings.ToUpper(stateName)
		if len(abbrev) > 2 {
			abbrev = abbrev[:2]
		}
	}

	if strings.EqualFold(number, "AL") {
		number = "01"
	} else if n, err := strconv.Atoi(number); err == nil {
		number = fmt.Sprintf("%02d", n)
	}
	return abbrev + "-" + number
}

// LoadRecords parses Cook Political Report rows from a reader. Rows with
// an empty State column are skipped. When explicit D%/R% columns are
// absent the percentages are approximated from the expected lean, and
// both election pairs carry the same values.
func LoadRecords(r io.Reader) ([]VotingRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// Strip a UTF-8 BOM from exports saved by spreadsheet tools.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	stateIdx, okState := col["State"]
	_, okNumber := col["Number"]
	pviIdx, okPVI := col["2025 Cook PVI"]
	if !okState || !okNumber || !okPVI {
		return nil, fmt.Errorf("%w: need State, Number and 2025 Cook PVI", ErrMissingColumns)
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []VotingRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if stateIdx >= len(row) || strings.TrimSpace(row[stateIdx]) == "" {
			continue
		}

		lean := ParsePVI(row[pviIdx])

		incumbent := field(row, "Member")
		if incumbent == "" {
			incumbent = field(row, "Incumbent")
		}

		var dPct, rPct float64
		if raw := field(row, "D%"); raw != "" {
			dPct, _ = strconv.ParseFloat(raw, 64)
			rPct, _ = strconv.ParseFloat(field(row, "R%"), 64)
		} else {
			dPct = 50.0 - lean/2
			rPct = 50.0 + lean/2
		}

		records = append(records, VotingRecord{
			District:     FormatDistrict(strings.TrimSpace(row[stateIdx]), field(row, "Number")),
			Incumbent:    incumbent,
			ExpectedLean: lean,
			DPct1:        dPct,
			RPct1:        rPct,
			DPct2:        dPct,
			RPct2:        rPct,
		})
	}
	return records, nil
}

// LoadFile loads district records from a CSV file on disk.
func LoadFile(path string) ([]VotingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadRecords(f)
}

// RecordsByDistrict indexes records by their district identifier.
func RecordsByDistrict(records []VotingRecord) map[string]VotingRecord {
	byDistrict := make(map[string]VotingRecord, len(records))
	for _, r := range records {
		byDistrict[r.District] = r
	}
	return byDistrict
}
