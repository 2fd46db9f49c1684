package ncaa

const providerName = "ncaa"

const (
	defaultBaseURL = "https://sdataprod.ncaa.com/"

	// Persisted GraphQL query hash for the GetContests operation.
	queryHash = "7287cda610a9326931931080cb3a604828febe6fe3c9016a7e4a36db99efdb7c"

	operationName = "GetContests_web"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// SportCode is a short token identifying a sport to the upstream provider.
type SportCode = string

// Sport codes recognized by the provider.
const (
	WomensBasketball SportCode = "WBB"
	MensBasketball   SportCode = "MBB"
	Football         SportCode = "MFB"
	Baseball         SportCode = "MBA"
	Softball         SportCode = "WSB"
	WomensVolleyball SportCode = "WVB"
	MensSoccer       SportCode = "MSO"
	WomensSoccer     SportCode = "WSO"
	WomensLacrosse   SportCode = "WLA"
	MensLacrosse     SportCode = "MLA"
	IceHockey        SportCode = "MIH"
	Wrestling        SportCode = "MWR"
)

type CatalogEntry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// sportCatalog maps display names to provider codes, in menu order.
var sportCatalog = []CatalogEntry{
	{"Women's Basketball", WomensBasketball},
	{"Men's Basketball", MensBasketball},
	{"Football", Football},
	{"Baseball", Baseball},
	{"Softball", Softball},
	{"Women's Volleyball", WomensVolleyball},
	{"Men's Soccer", MensSoccer},
	{"Women's Soccer", WomensSoccer},
	{"Women's Lacrosse", WomensLacrosse},
	{"Men's Lacrosse", MensLacrosse},
	{"Ice Hockey", IceHockey},
	{"Wrestling", Wrestling},
}

type DivisionEntry struct {
	Name     string `json:"name"`
	Division int    `json:"division"`
}

var divisionCatalog = []DivisionEntry{
	{"Division I", 1},
	{"Division II", 2},
	{"Division III", 3},
}

// Sports returns the display-name/code catalog in menu order.
func Sports() []CatalogEntry {
	out := make([]CatalogEntry, len(sportCatalog))
	copy(out, sportCatalog)
	return out
}

// Divisions returns the division catalog.
func Divisions() []DivisionEntry {
	out := make([]DivisionEntry, len(divisionCatalog))
	copy(out, divisionCatalog)
	return out
}

// IsKnownSportCode reports whether code is in the provider's catalog.
func IsKnownSportCode(code string) bool {
	for _, entry := range sportCatalog {
		if entry.Code == code {
			return true
		}
	}
	return false
}
