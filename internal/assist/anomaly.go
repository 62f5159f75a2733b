package assist

import (
	"fmt"
	"math"
	"time"

	"github.com/carbonpilot/carbonpilot/internal/emissions"
)

// Anomaly type identifiers.
const (
	AnomalyMissingQuantity  = "missing_quantity"
	AnomalyNegativeQuantity = "negative_quantity"
	AnomalyMissingPeriod    = "missing_period"
	AnomalyOutlier          = "outlier"
	AnomalyInconsistent     = "inconsistent_period"
	AnomalyLongPeriod       = "long_period"
	AnomalyDuplicate        = "duplicate"
)

// DetectAnomalies runs the rule-based data-quality checks on one record.
// Each rule is independent; the result lists every finding, severity-graded.
// Records with anomalies are still calculable: blocking is a caller decision.
func DetectAnomalies(record emissions.ActivityRecord, cfg Config) []Anomaly {
	var anomalies []Anomaly

	if record.Quantity == 0 && record.MonetaryAmount == 0 {
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyMissingQuantity,
			Severity: SeverityHigh,
			Message:  "record has neither a quantity nor a monetary amount",
		})
	}

	if record.Quantity < 0 {
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyNegativeQuantity,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("quantity is negative (%g)", record.Quantity),
		})
	}

	switch {
	case record.PeriodStart.IsZero() || record.PeriodEnd.IsZero():
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyMissingPeriod,
			Severity: SeverityMedium,
			Message:  "activity period is missing or incomplete",
		})
	case record.PeriodEnd.Before(record.PeriodStart):
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyInconsistent,
			Severity: SeverityHigh,
			Message:  "period end date precedes its start date",
		})
	case record.PeriodEnd.Sub(record.PeriodStart) > time.Duration(cfg.MaxPeriodDays)*24*time.Hour:
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyLongPeriod,
			Severity: SeverityLow,
			Message:  fmt.Sprintf("activity period exceeds %d days", cfg.MaxPeriodDays),
		})
	}

	if record.Quantity > cfg.OutlierCeiling || record.MonetaryAmount > cfg.OutlierCeiling {
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyOutlier,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("value exceeds the outlier ceiling (%g)", cfg.OutlierCeiling),
		})
	}

	return anomalies
}

// CheckDuplicate compares a record against already-imported history.
// Same supplier, same period and same category flag a duplicate: high
// severity when the quantities also match within the configured epsilon,
// medium otherwise.
func CheckDuplicate(record emissions.ActivityRecord, history []emissions.ActivityRecord, cfg Config) []Anomaly {
	var anomalies []Anomaly

	for _, prior := range history {
		if prior.ID != "" && prior.ID == record.ID {
			continue // same record, not a duplicate
		}
		if prior.Supplier != record.Supplier ||
			prior.Category != record.Category ||
			!prior.PeriodStart.Equal(record.PeriodStart) ||
			!prior.PeriodEnd.Equal(record.PeriodEnd) {
			continue
		}

		severity := SeverityMedium
		detail := "same supplier, period and category as an existing record"
		if math.Abs(prior.Quantity-record.Quantity) <= cfg.QuantityEpsilon {
			severity = SeverityHigh
			detail += " with matching quantity"
		}

		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyDuplicate,
			Severity: severity,
			Message:  detail,
		})
	}

	return anomalies
}
