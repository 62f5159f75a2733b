package refdata

import (
	"embed"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// SupportedDatasetConstraint is the semver range of dataset versions this
// build understands. Bumping the dataset major version means a schema change
// the loader cannot interpret.
const SupportedDatasetConstraint = "^1.0.0"

// Dataset load errors.
var (
	ErrDatasetVersionMissing     = constError("reference dataset has no version")
	ErrDatasetVersionUnsupported = constError("reference dataset version not supported")
)

// constError is an immutable sentinel error type.
type constError string

func (e constError) Error() string { return string(e) }

// Dataset is the parsed, immutable reference dataset.
type Dataset struct {
	Version string

	factors     []FactorRecord
	defaults    map[string]DefaultFactor
	sectors     map[string]SectorCategoryEntry
	monetary    []MonetaryRatio
	benchmarks  map[string]Benchmark
	multipliers map[string]map[string]float64
	remediation map[string]RemediationEntry
}

// datasetFile mirrors the top-level YAML document layout.
type datasetFile struct {
	Version     string                        `yaml:"version"`
	Factors     []FactorRecord                `yaml:"factors"`
	Defaults    []DefaultFactor               `yaml:"defaults"`
	Sectors     []SectorCategoryEntry         `yaml:"sectors"`
	Monetary    []MonetaryRatio               `yaml:"monetary_ratios"`
	Benchmarks  map[string]Benchmark          `yaml:"benchmarks"`
	Multipliers map[string]map[string]float64 `yaml:"sector_multipliers"`
	Remediation []RemediationEntry            `yaml:"remediation"`
}

// Load parses the embedded reference dataset. The dataset version must
// satisfy SupportedDatasetConstraint; anything else is a fail-fast
// configuration error, never a silent fallback.
func Load() (*Dataset, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("reading embedded dataset: %w", err)
	}

	ds := &Dataset{
		defaults:    make(map[string]DefaultFactor),
		sectors:     make(map[string]SectorCategoryEntry),
		benchmarks:  make(map[string]Benchmark),
		multipliers: make(map[string]map[string]float64),
		remediation: make(map[string]RemediationEntry),
	}

	constraint, err := semver.NewConstraint(SupportedDatasetConstraint)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset constraint: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		raw, err := dataFS.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		var file datasetFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}

		if file.Version == "" {
			return nil, fmt.Errorf("%w: %s", ErrDatasetVersionMissing, entry.Name())
		}

		version, err := semver.NewVersion(file.Version)
		if err != nil {
			return nil, fmt.Errorf("parsing version in %s: %w", entry.Name(), err)
		}
		if !constraint.Check(version) {
			return nil, fmt.Errorf("%w: %s has %s, need %s",
				ErrDatasetVersionUnsupported, entry.Name(), file.Version, SupportedDatasetConstraint)
		}
		ds.Version = file.Version

		ds.merge(&file)
	}

	return ds, nil
}

func (d *Dataset) merge(file *datasetFile) {
	d.factors = append(d.factors, file.Factors...)
	for _, def := range file.Defaults {
		d.defaults[strings.ToLower(def.Category)] = def
	}
	for _, s := range file.Sectors {
		d.sectors[s.ID] = s
	}
	d.monetary = append(d.monetary, file.Monetary...)
	for id, b := range file.Benchmarks {
		d.benchmarks[id] = b
	}
	for id, m := range file.Multipliers {
		d.multipliers[id] = m
	}
	for _, r := range file.Remediation {
		d.remediation[r.IndicatorID] = r
	}
}

// LookupFactor returns the best reference-table row for a category and
// country, or nil when the table has none. Row preference: exact country
// match over the GLOBAL wildcard, then default rows, then active rows.
// Resolution is deterministic for an unchanged dataset.
func (d *Dataset) LookupFactor(category, country string) *FactorRecord {
	category = strings.ToLower(strings.TrimSpace(category))
	country = strings.ToUpper(strings.TrimSpace(country))

	var best *FactorRecord
	for i := range d.factors {
		row := &d.factors[i]
		if strings.ToLower(row.Category) != category {
			continue
		}
		if row.Country != "GLOBAL" && row.Country != country {
			continue
		}
		if best == nil || factorRowRank(row, country) > factorRowRank(best, country) {
			best = row
		}
	}
	return best
}

// factorRowRank orders candidate rows: country match outranks GLOBAL,
// default outranks non-default, active outranks inactive.
func factorRowRank(row *FactorRecord, country string) int {
	rank := 0
	if row.Country == country && country != "" {
		rank += 4
	}
	if row.Default {
		rank += 2
	}
	if row.Active {
		rank++
	}
	return rank
}

// LookupSectorCategory returns the Scope-3 library entry with the given id,
// or nil when none exists.
func (d *Dataset) LookupSectorCategory(id string) *SectorCategoryEntry {
	entry, ok := d.sectors[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil
	}
	return &entry
}

// LookupDefault returns the static-default factor for a category.
func (d *Dataset) LookupDefault(category string) (DefaultFactor, bool) {
	def, ok := d.defaults[strings.ToLower(strings.TrimSpace(category))]
	return def, ok
}

// MonetaryRatios returns the keyword->ratio table for monetary estimation.
func (d *Dataset) MonetaryRatios() []MonetaryRatio {
	return d.monetary
}

// Benchmark returns the scoring benchmark for an indicator id.
func (d *Dataset) Benchmark(indicatorID string) (Benchmark, bool) {
	b, ok := d.benchmarks[indicatorID]
	return b, ok
}

// SectorMultiplier returns the materiality multiplier for an indicator in a
// sector. Indicators with no entry for the sector weigh 1.
func (d *Dataset) SectorMultiplier(indicatorID, sector string) float64 {
	bySector, ok := d.multipliers[indicatorID]
	if !ok {
		return 1
	}
	m, ok := bySector[strings.ToLower(strings.TrimSpace(sector))]
	if !ok || m <= 0 {
		return 1
	}
	return m
}

// Remediation returns the remediation-library entry for an indicator id.
func (d *Dataset) Remediation(indicatorID string) (RemediationEntry, bool) {
	r, ok := d.remediation[indicatorID]
	return r, ok
}

// RemediationEntries returns every remediation entry, keyed by indicator.
func (d *Dataset) RemediationEntries() map[string]RemediationEntry {
	return d.remediation
}
