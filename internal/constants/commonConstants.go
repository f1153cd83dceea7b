package constants

type (
	APIStatus   string
	CachePrefix string
	SourceName  string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixDataset CachePrefix = "DATASET_"
	CachePrefixSuggest CachePrefix = "SUGGEST_"

	SourceOpenFlights SourceName = "openflights"
	SourceOurAirports SourceName = "ourairports"
	SourceISOCSV      SourceName = "iso_csv"
	SourceFactbook    SourceName = "factbook"
)

// SuggestLimit caps the number of suggestions returned for a query.
const SuggestLimit = 5

// Default public source locations.
const (
	DefaultOpenFlightsURL = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airports.dat"
	DefaultOurAirportsURL = "https://raw.githubusercontent.com/davidmegginson/ourairports-data/main/airports.csv"
	DefaultFactbookURL    = "https://www.cia.gov/the-world-factbook/references/country-data-codes/"
	DefaultDatasetPath    = "public/data/airports.json"
	DefaultISOCSVPath     = "iso.csv"
)
