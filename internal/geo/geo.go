// Package geo holds the reference data set used to validate country and town
// names on trip submissions.
package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrReferenceUnavailable reports that the reference data set could not be
// read or parsed. It is only returned from Load/Parse; membership queries on
// a loaded Reference never fail.
var ErrReferenceUnavailable = errors.New("geo reference data unavailable")

type entry struct {
	display string
	towns   map[string]struct{}
}

// Reference maps countries to the towns known to be in them. It is immutable
// after loading, so a single instance can be shared across requests.
type Reference struct {
	countries map[string]entry
}

// Load reads the reference CSV from path. The file must have a Country
// column; every other column value in a row is recorded as a town of that
// row's country, accumulated across rows.
func Load(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrReferenceUnavailable, path, err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Reference, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrReferenceUnavailable, err)
	}

	countryCol := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "Country") {
			countryCol = i
			break
		}
	}
	if countryCol < 0 {
		return nil, fmt.Errorf("%w: no Country column in header", ErrReferenceUnavailable)
	}

	countries := make(map[string]entry)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", ErrReferenceUnavailable, err)
		}
		if countryCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[countryCol])
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		e, ok := countries[key]
		if !ok {
			e = entry{
				display: cases.Title(language.Und).String(key),
				towns:   make(map[string]struct{}),
			}
		}
		for i, value := range record {
			if i == countryCol {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			e.towns[strings.ToLower(value)] = struct{}{}
		}
		countries[key] = e
	}

	return &Reference{countries: countries}, nil
}

// CountryExists reports whether name matches a known country, ignoring case.
func (r *Reference) CountryExists(name string) bool {
	_, ok := r.countries[strings.ToLower(name)]
	return ok
}

// TownInCountry reports whether town is recorded under country, ignoring
// case. An unknown country yields false, never an error.
func (r *Reference) TownInCountry(country, town string) bool {
	e, ok := r.countries[strings.ToLower(country)]
	if !ok {
		return false
	}
	_, ok = e.towns[strings.ToLower(town)]
	return ok
}

// DisplayName returns the canonical title-cased form of country, used to
// build "town,Country" labels for the route provider. Returns "" for an
// unknown country.
func (r *Reference) DisplayName(country string) string {
	e, ok := r.countries[strings.ToLower(country)]
	if !ok {
		return ""
	}
	return e.display
}
