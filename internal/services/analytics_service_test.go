package services_test

import (
	"testing"
	"time"

	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/testutil"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsSetup(t *testing.T) (*testutil.TestSetup, *services.AnalyticsService) {
	ts := testutil.NewTestSetup(t)
	t.Cleanup(ts.Cleanup)
	ts.SetupTestDatabase()

	return ts, services.NewAnalyticsService(ts.Repos.Prediction(), testLogger())
}

func TestSummaryEmptyHistory(t *testing.T) {
	_, svc := newAnalyticsSetup(t)

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.Zero(t, summary.TotalPredictions)
	assert.Empty(t, summary.FaultTypePercentages)
	assert.Empty(t, summary.SeverityPercentages)
	assert.Equal(t, "Unknown", summary.MostCommonFault)
	assert.Equal(t, "Unknown", summary.MostCommonSeverity)
	assert.Zero(t, summary.CriticalFaults)
	assert.Zero(t, summary.NormalOperations)
}

func TestSummaryCountsAndPercentages(t *testing.T) {
	ts, svc := newAnalyticsSetup(t)

	now := time.Now().UTC()
	ts.SeedPrediction("NORMAL", "None", now)
	ts.SeedPrediction("NORMAL", "None", now)
	ts.SeedPrediction("INVERTER_FAULT", "Critical", now)
	ts.SeedPrediction("DUST_ACCUMULATION", "Low", now)

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.EqualValues(t, 4, summary.TotalPredictions)
	assert.EqualValues(t, 2, summary.FaultTypeCounts["NORMAL"])
	assert.EqualValues(t, 1, summary.FaultTypeCounts["INVERTER_FAULT"])
	assert.Equal(t, 50.0, summary.FaultTypePercentages["NORMAL"])
	assert.Equal(t, 25.0, summary.FaultTypePercentages["INVERTER_FAULT"])
	assert.Equal(t, 25.0, summary.FaultTypePercentages["DUST_ACCUMULATION"])
	assert.Equal(t, "NORMAL", summary.MostCommonFault)
	assert.Equal(t, "None", summary.MostCommonSeverity)
	assert.EqualValues(t, 1, summary.CriticalFaults)
	assert.EqualValues(t, 2, summary.NormalOperations)

	var total float64
	for _, p := range summary.FaultTypePercentages {
		total += p
	}
	assert.InDelta(t, 100.0, total, 0.01)
}

func TestTrendsEveryDayGetsAPoint(t *testing.T) {
	ts, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

	ts.SeedPrediction("NORMAL", "None", start.Add(10*time.Hour))
	ts.SeedPrediction("PARTIAL_SHADING", "Medium", start.Add(14*time.Hour))
	ts.SeedPrediction("INVERTER_FAULT", "Critical", start.AddDate(0, 0, 2).Add(9*time.Hour))

	trends, err := svc.Trends(start, end)
	require.NoError(t, err)

	require.Len(t, trends.DailyTrends, 5)
	assert.Equal(t, "2026-08-01", trends.StartDate)
	assert.Equal(t, "2026-08-05", trends.EndDate)
	assert.EqualValues(t, 3, trends.TotalPredictionsInPeriod)

	assert.Equal(t, "2026-08-01", trends.DailyTrends[0].Date)
	assert.EqualValues(t, 2, trends.DailyTrends[0].TotalCount)
	assert.EqualValues(t, 1, trends.DailyTrends[2].TotalCount)
	assert.EqualValues(t, 0, trends.DailyTrends[1].TotalCount)
	assert.EqualValues(t, 0, trends.DailyTrends[4].TotalCount)

	var sum int64
	for _, point := range trends.DailyTrends {
		sum += point.TotalCount
	}
	assert.Equal(t, trends.TotalPredictionsInPeriod, sum)
}

func TestTrendsExcludesPredictionsOutsideRange(t *testing.T) {
	ts, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)

	ts.SeedPrediction("NORMAL", "None", start.AddDate(0, 0, -1).Add(12*time.Hour))
	ts.SeedPrediction("NORMAL", "None", start.Add(12*time.Hour))
	ts.SeedPrediction("NORMAL", "None", end.AddDate(0, 0, 1).Add(12*time.Hour))

	trends, err := svc.Trends(start, end)
	require.NoError(t, err)

	assert.EqualValues(t, 1, trends.TotalPredictionsInPeriod)
}

func TestTrendDirectionIncreasing(t *testing.T) {
	ts, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	counts := []int{1, 1, 2, 2, 4, 4}
	for day, n := range counts {
		for i := 0; i < n; i++ {
			ts.SeedPrediction("DUST_ACCUMULATION", "Low", start.AddDate(0, 0, day).Add(12*time.Hour))
		}
	}

	trends, err := svc.Trends(start, start.AddDate(0, 0, 5))
	require.NoError(t, err)

	assert.Equal(t, services.TrendIncreasing, trends.TrendDirection)
	assert.Equal(t, "DUST_ACCUMULATION", trends.MostActiveFaultType)
}

func TestTrendDirectionDecreasing(t *testing.T) {
	ts, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	counts := []int{4, 4, 2, 2, 1, 0}
	for day, n := range counts {
		for i := 0; i < n; i++ {
			ts.SeedPrediction("PARTIAL_SHADING", "Medium", start.AddDate(0, 0, day).Add(12*time.Hour))
		}
	}

	trends, err := svc.Trends(start, start.AddDate(0, 0, 5))
	require.NoError(t, err)

	assert.Equal(t, services.TrendDecreasing, trends.TrendDirection)
}

func TestTrendDirectionStable(t *testing.T) {
	ts, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 6; day++ {
		ts.SeedPrediction("NORMAL", "None", start.AddDate(0, 0, day).Add(12*time.Hour))
	}

	trends, err := svc.Trends(start, start.AddDate(0, 0, 5))
	require.NoError(t, err)

	assert.Equal(t, services.TrendStable, trends.TrendDirection)
}

func TestTrendDirectionInsufficientData(t *testing.T) {
	_, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	trends, err := svc.Trends(start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, services.TrendInsufficientData, trends.TrendDirection)
}

func TestTrendsRejectsInvertedRange(t *testing.T) {
	_, svc := newAnalyticsSetup(t)

	start := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.Trends(start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestTrendsLastDaysRejectsNonPositive(t *testing.T) {
	_, svc := newAnalyticsSetup(t)

	_, err := svc.TrendsLastDays(0)
	assert.ErrorIs(t, err, utils.ErrValidation)
}
