package astroapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"astrocards/internal/domain"
)

// wireRecord mirrors the provider payload with pointer fields so absent and
// null members can be told apart from empty strings and zero.
type wireRecord struct {
	Name    *string    `json:"name"`
	Region  *string    `json:"region"`
	Country *string    `json:"country"`
	Date    *string    `json:"date"`
	Astro   *wireAstro `json:"astro"`
}

type wireAstro struct {
	Sunrise          *string  `json:"sunrise"`
	Sunset           *string  `json:"sunset"`
	Moonrise         *string  `json:"moonrise"`
	Moonset          *string  `json:"moonset"`
	MoonPhase        *string  `json:"moon_phase"`
	MoonIllumination *float64 `json:"moon_illumination"`
}

// DecodeRecord parses a provider body. Every field of the record is required;
// unknown extra members are ignored. Values are copied verbatim.
func DecodeRecord(body []byte) (*domain.AstroRecord, error) {
	var raw wireRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	var missing []string
	str := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}

	record := &domain.AstroRecord{
		Name:    str("name", raw.Name),
		Region:  str("region", raw.Region),
		Country: str("country", raw.Country),
		Date:    str("date", raw.Date),
	}

	if raw.Astro == nil {
		missing = append(missing, "astro")
	} else {
		a := raw.Astro
		record.Astro = domain.AstroDetails{
			Sunrise:   str("astro.sunrise", a.Sunrise),
			Sunset:    str("astro.sunset", a.Sunset),
			Moonrise:  str("astro.moonrise", a.Moonrise),
			Moonset:   str("astro.moonset", a.Moonset),
			MoonPhase: domain.MoonPhase(str("astro.moon_phase", a.MoonPhase)),
		}
		if a.MoonIllumination == nil {
			missing = append(missing, "astro.moon_illumination")
		} else {
			record.Astro.MoonIllumination = *a.MoonIllumination
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrDecode, strings.Join(missing, ", "))
	}

	return record, nil
}
