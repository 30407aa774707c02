package autograder

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
)

func machineCodeLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// compareMachineCode reports the first difference into test.
func compareMachineCode(got, want string, test *GradescopeTest) bool {
	gotLines := machineCodeLines(got)
	wantLines := machineCodeLines(want)

	for i := 0; i < len(gotLines) && i < len(wantLines); i++ {
		if gotLines[i] != wantLines[i] {
			test.printf("Instruction %d differs: expected %s, got %s", i, wantLines[i], gotLines[i])
			return false
		}
	}
	if len(gotLines) != len(wantLines) {
		test.printf("Expected %d instructions, got %d", len(wantLines), len(gotLines))
		return false
	}

	test.printf("All %d instructions match", len(wantLines))
	return true
}

func gradeTestCase(tc TestCase, test *GradescopeTest) bool {
	b, e := os.ReadFile(tc.Source)
	if e != nil {
		test.printf("Could not read source: %v", e)
		return false
	}

	res := assembler.Assemble(string(b))
	res.FileName = filepath.Base(tc.Source)
	got, e := res.Hack()
	if e != nil {
		test.printf("Assembly failed:\n%v", e)
		return false
	}

	want, e := os.ReadFile(tc.Expected)
	if e != nil {
		glog.Errorf("Test case %s has no readable expected output: %v", tc.Name, e)
		test.printf("Could not read expected output, contact the course staff")
		return false
	}

	return compareMachineCode(got, string(want), test)
}

// AutogradeAssembler translates every test case source and compares it with
// the expected machine code, then saves the Gradescope results.
func AutogradeAssembler(conf *Config) (*GradescopeOutput, error) {
	start := time.Now()
	output := CreateGradescopeOutput()
	for _, tc := range conf.TestCases {
		test := newTestResult(tc)
		test.finish(gradeTestCase(tc, &test))
		glog.Infof("Test case %d (%s): %s", tc.Number, tc.Name, test.Status)
		output.AddTest(test)
	}

	output.ExecutionTime = time.Since(start).Seconds()
	output.AddLeaderBoardEntry(GradescopeLeaderBoardEntry{Name: "Tests passed", Value: output.Passed(), Order: "desc"})
	return output, output.Save(conf.ResultsPath)
}
