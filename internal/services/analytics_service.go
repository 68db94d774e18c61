package services

import (
	"fmt"
	"math"
	"time"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// AnalyticsSummary aggregates the full prediction history
type AnalyticsSummary struct {
	TotalPredictions     int64              `json:"total_predictions"`
	FaultTypeCounts      map[string]int64   `json:"fault_type_counts"`
	SeverityCounts       map[string]int64   `json:"severity_counts"`
	FaultTypePercentages map[string]float64 `json:"fault_type_percentages"`
	SeverityPercentages  map[string]float64 `json:"severity_percentages"`
	MostCommonFault      string             `json:"most_common_fault"`
	MostCommonSeverity   string             `json:"most_common_severity"`
	CriticalFaults       int64              `json:"critical_faults"`
	NormalOperations     int64              `json:"normal_operations"`
}

// TrendPoint aggregates predictions for one calendar day
type TrendPoint struct {
	Date            string           `json:"date"`
	TotalCount      int64            `json:"total_count"`
	FaultTypeCounts map[string]int64 `json:"fault_type_counts"`
	SeverityCounts  map[string]int64 `json:"severity_counts"`
}

// AnalyticsTrends aggregates predictions per day over a date range
type AnalyticsTrends struct {
	StartDate                string       `json:"start_date"`
	EndDate                  string       `json:"end_date"`
	DailyTrends              []TrendPoint `json:"daily_trends"`
	TotalPredictionsInPeriod int64        `json:"total_predictions_in_period"`
	MostActiveFaultType      string       `json:"most_active_fault_type"`
	TrendDirection           string       `json:"trend_direction"`
}

// Trend directions
const (
	TrendIncreasing       = "INCREASING"
	TrendDecreasing       = "DECREASING"
	TrendStable           = "STABLE"
	TrendInsufficientData = "INSUFFICIENT_DATA"
)

const dateLayout = "2006-01-02"

// AnalyticsService computes aggregate statistics over prediction history.
// All aggregation happens per request; nothing is cached.
type AnalyticsService struct {
	predictionRepo repository.PredictionRepository
	logger         *utils.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(predictionRepo repository.PredictionRepository, logger *utils.Logger) *AnalyticsService {
	return &AnalyticsService{
		predictionRepo: predictionRepo,
		logger:         logger.Named("analytics_service"),
	}
}

// Summary aggregates all stored predictions. With no predictions the counts
// are zero and the percentage maps are empty.
func (s *AnalyticsService) Summary() (*AnalyticsSummary, error) {
	total, err := s.predictionRepo.Count()
	if err != nil {
		return nil, err
	}

	faultCounts, err := s.predictionRepo.CountsByFaultType()
	if err != nil {
		return nil, err
	}

	severityCounts, err := s.predictionRepo.CountsBySeverity()
	if err != nil {
		return nil, err
	}

	faultMap := make(map[string]int64, len(faultCounts))
	for _, c := range faultCounts {
		faultMap[c.PredictedFault] = c.Count
	}

	severityMap := make(map[string]int64, len(severityCounts))
	for _, c := range severityCounts {
		severityMap[c.Severity] = c.Count
	}

	summary := &AnalyticsSummary{
		TotalPredictions:     total,
		FaultTypeCounts:      faultMap,
		SeverityCounts:       severityMap,
		FaultTypePercentages: calculatePercentages(faultMap, total),
		SeverityPercentages:  calculatePercentages(severityMap, total),
		MostCommonFault:      mostCommonValue(faultMap),
		MostCommonSeverity:   mostCommonValue(severityMap),
		CriticalFaults:       severityMap["Critical"],
		NormalOperations:     faultMap[models.FaultNormal],
	}

	s.logger.Info("Analytics summary generated",
		zap.Int64("total_predictions", total),
		zap.String("most_common_fault", summary.MostCommonFault),
	)

	return summary, nil
}

// Trends aggregates predictions per calendar day across [startDate, endDate].
// Every day in the range gets a data point, including days with no
// predictions.
func (s *AnalyticsService) Trends(startDate, endDate time.Time) (*AnalyticsTrends, error) {
	startDate = truncateToDay(startDate)
	endDate = truncateToDay(endDate)

	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start date cannot be after end date", utils.ErrValidation)
	}

	rangeStart := startDate
	rangeEnd := endDate.Add(24*time.Hour - time.Second)

	predictions, err := s.predictionRepo.ListBetween(rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]models.Prediction)
	for _, p := range predictions {
		day := p.CreatedAt.UTC().Format(dateLayout)
		byDay[day] = append(byDay[day], p)
	}

	var daily []TrendPoint
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		daily = append(daily, buildTrendPoint(key, byDay[key]))
	}

	faultCounts := make(map[string]int64)
	for _, p := range predictions {
		faultCounts[p.PredictedFault]++
	}

	trends := &AnalyticsTrends{
		StartDate:                startDate.Format(dateLayout),
		EndDate:                  endDate.Format(dateLayout),
		DailyTrends:              daily,
		TotalPredictionsInPeriod: int64(len(predictions)),
		MostActiveFaultType:      mostCommonValue(faultCounts),
		TrendDirection:           trendDirection(daily),
	}

	s.logger.Info("Analytics trends generated",
		zap.Int("days", len(daily)),
		zap.Int64("total_predictions", trends.TotalPredictionsInPeriod),
	)

	return trends, nil
}

// TrendsLastDays aggregates trends for the last N days, today inclusive
func (s *AnalyticsService) TrendsLastDays(days int) (*AnalyticsTrends, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", utils.ErrValidation)
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(days - 1))
	return s.Trends(start, end)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func buildTrendPoint(date string, predictions []models.Prediction) TrendPoint {
	faultCounts := make(map[string]int64)
	severityCounts := make(map[string]int64)
	for _, p := range predictions {
		faultCounts[p.PredictedFault]++
		severityCounts[p.Severity]++
	}

	return TrendPoint{
		Date:            date,
		TotalCount:      int64(len(predictions)),
		FaultTypeCounts: faultCounts,
		SeverityCounts:  severityCounts,
	}
}

// calculatePercentages converts counts to percentages of the total, rounded
// to two decimal places. A zero total yields an empty map.
func calculatePercentages(counts map[string]int64, total int64) map[string]float64 {
	percentages := make(map[string]float64)
	if total == 0 {
		return percentages
	}

	for key, count := range counts {
		p := float64(count) / float64(total) * 100.0
		percentages[key] = math.Round(p*100.0) / 100.0
	}
	return percentages
}

// mostCommonValue returns the key with the highest count. Ties resolve to
// the lexically smallest key so results are deterministic. Empty input
// yields "Unknown".
func mostCommonValue(counts map[string]int64) string {
	best := ""
	var bestCount int64 = -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best = key
			bestCount = count
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}

// trendDirection compares mean daily volume at the start and end of the
// range. The sample window is a third of the range. Fewer than three days
// is not enough signal.
func trendDirection(daily []TrendPoint) string {
	if len(daily) < 3 {
		return TrendInsufficientData
	}

	sampleSize := len(daily) / 3

	var startSum, endSum int64
	for i := 0; i < sampleSize; i++ {
		startSum += daily[i].TotalCount
		endSum += daily[len(daily)-sampleSize+i].TotalCount
	}

	startAvg := float64(startSum) / float64(sampleSize)
	endAvg := float64(endSum) / float64(sampleSize)

	if startAvg == 0 {
		return TrendStable
	}

	change := (endAvg - startAvg) / startAvg * 100.0
	switch {
	case change > 10:
		return TrendIncreasing
	case change < -10:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
