package autograder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// GradescopeTest is one entry of the "tests" array in results.json.
type GradescopeTest struct {
	Number     string `json:"number,omitempty"`
	Name       string `json:"name"`
	MaxScore   int    `json:"max_score"`
	Score      int    `json:"score"`
	Output     string `json:"output"`
	Visibility string `json:"visibility"`
	Status     string `json:"status,omitempty"`
}

type GradescopeLeaderBoardEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Order string `json:"order,omitempty"`
}

type GradescopeOutput struct {
	ExecutionTime   float64                      `json:"execution_time,omitempty"` // seconds
	Tests           []GradescopeTest             `json:"tests"`
	LeaderboardData []GradescopeLeaderBoardEntry `json:"leaderboard"`
}

func CreateGradescopeOutput() *GradescopeOutput {
	return &GradescopeOutput{
		Tests:           []GradescopeTest{},
		LeaderboardData: []GradescopeLeaderBoardEntry{},
	}
}

func newTestResult(tc TestCase) GradescopeTest {
	visibility := tc.Visibility
	if visibility == "" {
		visibility = "visible"
	}
	return GradescopeTest{
		Number:     fmt.Sprint(tc.Number),
		Name:       tc.Name,
		MaxScore:   tc.Points,
		Visibility: visibility,
	}
}

// finish marks the test and awards either all or none of its points.
func (gt *GradescopeTest) finish(passed bool) {
	if passed {
		gt.Status = "passed"
		gt.Score = gt.MaxScore
	} else {
		gt.Status = "failed"
		gt.Score = 0
	}
}

func (gt *GradescopeTest) printf(format string, args ...interface{}) {
	gt.Output += fmt.Sprintf(format, args...) + "\n"
}

func (gso *GradescopeOutput) AddTest(test GradescopeTest) {
	gso.Tests = append(gso.Tests, test)
}

func (gso *GradescopeOutput) AddLeaderBoardEntry(entry GradescopeLeaderBoardEntry) {
	gso.LeaderboardData = append(gso.LeaderboardData, entry)
}

// Score is the sum of all test scores.
func (gso *GradescopeOutput) Score() int {
	total := 0
	for _, test := range gso.Tests {
		total += test.Score
	}
	return total
}

// Passed counts the tests with status "passed".
func (gso *GradescopeOutput) Passed() int {
	n := 0
	for _, test := range gso.Tests {
		if test.Status == "passed" {
			n++
		}
	}
	return n
}

func (gso *GradescopeOutput) Save(path string) error {
	b, e := json.MarshalIndent(gso, "", "  ")
	if e != nil {
		return e
	}

	if e := os.MkdirAll(filepath.Dir(path), 0755); e != nil {
		return e
	}
	return os.WriteFile(path, b, 0644)
}
