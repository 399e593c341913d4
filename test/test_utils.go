package test

import (
	"fmt"
	"testing"
	"time"

	"Backend-Celestia-Admin/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestTimer measures how long a block of a test takes
type TestTimer struct {
	start time.Time
	name  string
}

func NewTestTimer(name string) *TestTimer {
	return &TestTimer{start: time.Now(), name: name}
}

// Stop prints and returns the elapsed time
func (t *TestTimer) Stop() time.Duration {
	duration := time.Since(t.start)
	fmt.Printf("⏱️  %s took %v\n", t.name, duration)
	return duration
}

// PerformanceAssertion fails the test when duration exceeds maxDuration
func PerformanceAssertion(t *testing.T, testName string, duration time.Duration, maxDuration time.Duration) {
	t.Helper()
	if duration > maxDuration {
		t.Errorf("❌ %s performance test failed: took %v, expected less than %v", testName, duration, maxDuration)
	} else {
		t.Logf("✅ %s performance test passed: took %v (under %v limit)", testName, duration, maxDuration)
	}
}

type TestResult struct {
	Name     string
	Duration time.Duration
	Passed   bool
	Error    error
}

// TestSuiteResult collects timed results and prints them at the end of a suite
type TestSuiteResult struct {
	SuiteName   string
	TotalTests  int
	PassedTests int
	FailedTests int
	TotalTime   time.Duration
	Results     []TestResult
}

func NewTestSuiteResult(suiteName string) *TestSuiteResult {
	return &TestSuiteResult{SuiteName: suiteName, Results: make([]TestResult, 0)}
}

func (tsr *TestSuiteResult) AddResult(result TestResult) {
	tsr.Results = append(tsr.Results, result)
	tsr.TotalTests++
	tsr.TotalTime += result.Duration
	if result.Passed {
		tsr.PassedTests++
	} else {
		tsr.FailedTests++
	}
}

func (tsr *TestSuiteResult) PrintSummary() {
	fmt.Printf("\n📊 Test Suite Summary: %s\n", tsr.SuiteName)
	fmt.Printf("   Total Tests: %d\n", tsr.TotalTests)
	fmt.Printf("   Passed: %d ✅\n", tsr.PassedTests)
	fmt.Printf("   Failed: %d ❌\n", tsr.FailedTests)
	fmt.Printf("   Total Time: %v\n", tsr.TotalTime)
	for _, result := range tsr.Results {
		status := "✅"
		if !result.Passed {
			status = "❌"
		}
		fmt.Printf("   %s %s: %v\n", status, result.Name, result.Duration)
	}
	fmt.Println()
}

// GenerateOrders builds n orders of size attendees each. Every third attendee is
// approved and every second approved attendee is checked in; order i holds seats
// "S<i>-<pos>".
func GenerateOrders(n, size int) []models.RegistrationOrder {
	base := time.Date(2024, 11, 2, 18, 0, 0, 0, time.UTC)
	orders := make([]models.RegistrationOrder, n)
	k := 0
	for i := range orders {
		o := models.RegistrationOrder{
			ID:    primitive.NewObjectID(),
			Index: fmt.Sprintf("%09dV", i),
		}
		for pos := 0; pos < size; pos++ {
			a := models.Attendee{
				ID:         primitive.NewObjectID(),
				Username:   fmt.Sprintf("guest-%d-%d", i, pos),
				TotalPrice: 1500,
				Status:     models.StatusPending,
			}
			if k%3 == 0 {
				a.Status = models.StatusApproved
				if (k/3)%2 == 0 {
					at := base.Add(time.Duration(n*size-k) * time.Second)
					a.IsCheckedIn = true
					a.CheckInTime = &at
				}
			}
			o.Seats = append(o.Seats, fmt.Sprintf("S%d-%d", i, pos))
			o.Attendees = append(o.Attendees, a)
			k++
		}
		orders[i] = o
	}
	return orders
}
