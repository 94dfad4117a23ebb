// Package countries maps ISO 3166-1 alpha-2 codes to display records.
package countries

import (
	"sync"

	"github.com/Dosada05/tournament-portal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Table is an immutable code → country mapping. The zero value is empty.
type Table struct {
	byCode map[string]models.Country
}

// New copies entries into a table keyed by Country.Code.
func New(entries ...models.Country) *Table {
	byCode := make(map[string]models.Country, len(entries))
	for _, c := range entries {
		byCode[c.Code] = c
	}
	return &Table{byCode: byCode}
}

// Lookup expects an upper-case code, as stored on user profiles.
func (t *Table) Lookup(code string) (models.Country, bool) {
	if t == nil {
		return models.Country{}, false
	}
	c, ok := t.byCode[code]
	return c, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byCode)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table built from CLDR region data with English names.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = Build(display.English.Regions())
	})
	return defaultTable
}

// nonISO are CLDR regions outside ISO 3166-1.
var nonISO = map[string]bool{
	"AC": true, "CP": true, "CQ": true, "DG": true, "EA": true,
	"EZ": true, "IC": true, "TA": true, "UN": true, "XA": true, "XB": true,
}

// shortNames replaces CLDR's long English names with the common ones.
var shortNames = map[string]string{
	"CD": "Democratic Republic of the Congo",
	"CG": "Republic of the Congo",
	"CI": "Ivory Coast",
	"HK": "Hong Kong",
	"MM": "Myanmar",
	"MO": "Macao",
	"PS": "Palestine",
}

// Build collects every ISO 3166-1 country that CLDR knows, named by namer.
// Names from shortNames take precedence.
func Build(namer display.Namer) *Table {
	entries := make([]models.Country, 0, 256)
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			code := string([]rune{a, b})
			region, err := language.ParseRegion(code)
			if err != nil || region.String() != code || !region.IsCountry() || nonISO[code] {
				continue
			}
			name, ok := shortNames[code]
			if !ok {
				name = namer.Name(region)
			}
			if name == "" {
				continue
			}
			entries = append(entries, models.Country{Code: code, Name: name, Emoji: Flag(code)})
		}
	}
	return New(entries...)
}

// Flag turns a two-letter code into its regional indicator pair.
func Flag(code string) string {
	if len(code) != 2 {
		return ""
	}
	const base = 0x1F1E6
	runes := make([]rune, 0, 2)
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return ""
		}
		runes = append(runes, base+(c-'A'))
	}
	return string(runes)
}
