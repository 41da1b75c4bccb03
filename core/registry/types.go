package registry

// CrawledType is the variant type code of a crawled property.
type CrawledType int

const (
	CrawledDecimal  CrawledType = 5
	CrawledBoolean  CrawledType = 11
	CrawledInteger  CrawledType = 20
	CrawledText     CrawledType = 31
	CrawledDateTime CrawledType = 64
	CrawledBinary   CrawledType = 65
)

// ManagedType is the data type code of a managed property.
type ManagedType int

const (
	ManagedText     ManagedType = 1
	ManagedInteger  ManagedType = 2
	ManagedDecimal  ManagedType = 3
	ManagedDateTime ManagedType = 4
	ManagedBoolean  ManagedType = 5
	ManagedBinary   ManagedType = 6
)

// SortMode controls whether a managed property can be sorted on.
type SortMode int

const (
	SortDisabled SortMode = 0
	SortEnabled  SortMode = 1
	SortLatent   SortMode = 2
)

// SummaryMode controls result preview generation for a managed property.
type SummaryMode int

const (
	SummaryDisabled SummaryMode = 0
	SummaryStatic   SummaryMode = 1
	SummaryDynamic  SummaryMode = 2
)

// Bool is a boolean literal code: 1 for true, 0 for false.
type Bool int

const (
	False Bool = 0
	True  Bool = 1
)

var (
	CrawledTypes = newTable("crawled property type",
		entry[CrawledType]{"text", CrawledText},
		entry[CrawledType]{"integer", CrawledInteger},
		entry[CrawledType]{"decimal", CrawledDecimal},
		entry[CrawledType]{"datetime", CrawledDateTime},
		entry[CrawledType]{"boolean", CrawledBoolean},
		entry[CrawledType]{"binary", CrawledBinary},
	)

	ManagedTypes = newTable("managed property type",
		entry[ManagedType]{"text", ManagedText},
		entry[ManagedType]{"integer", ManagedInteger},
		entry[ManagedType]{"decimal", ManagedDecimal},
		entry[ManagedType]{"datetime", ManagedDateTime},
		entry[ManagedType]{"boolean", ManagedBoolean},
		entry[ManagedType]{"binary", ManagedBinary},
	)

	SortModes = newTable("sort mode",
		entry[SortMode]{"disabled", SortDisabled},
		entry[SortMode]{"enabled", SortEnabled},
		entry[SortMode]{"latent", SortLatent},
	)

	SummaryModes = newTable("summary mode",
		entry[SummaryMode]{"disabled", SummaryDisabled},
		entry[SummaryMode]{"static", SummaryStatic},
		entry[SummaryMode]{"dynamic", SummaryDynamic},
	)

	Booleans = newTable("boolean literal",
		entry[Bool]{"true", True},
		entry[Bool]{"false", False},
		entry[Bool]{"yes", True},
		entry[Bool]{"no", False},
		entry[Bool]{"1", True},
		entry[Bool]{"0", False},
	)
)

// ParseBool parses a boolean literal.
func ParseBool(name string) (bool, error) {
	b, err := Booleans.Parse(name)
	if err != nil {
		return false, err
	}
	return b == True, nil
}
