// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/autograde/internal/outcome"
	"github.com/bartekus/autograde/internal/points"
	"github.com/bartekus/autograde/internal/report"
)

func pass(loc string) outcome.TestOutcome { return outcome.TestOutcome{Location: loc, Passed: true} }
func fail(loc string) outcome.TestOutcome { return outcome.TestOutcome{Location: loc, Passed: false} }

func block(name, loc string, tests ...outcome.TestOutcome) outcome.BlockOutcome {
	return outcome.BlockOutcome{Name: name, Location: loc, Tests: tests}
}

func erroredBlock(name, loc string) outcome.BlockOutcome {
	return outcome.BlockOutcome{Name: name, Location: loc, Errored: true, Tests: []outcome.TestOutcome{fail("garbage")}}
}

func TestClassifyAndPartition(t *testing.T) {
	assert.Equal(t, RoleWheat, Classify("impls/wheat-1.arr"))
	assert.Equal(t, RoleChaff, Classify("impls/chaff-1.arr"))
	assert.Equal(t, RoleWheat, Classify("wheat-chaff.arr"), "wheat is checked before chaff")
	assert.Equal(t, RoleFunctionality, Classify("student/Wheat.arr"), "match is case-sensitive")
	assert.Equal(t, RoleFunctionality, Classify("student/code.arr"))
	assert.Equal(t, "chaff", RoleChaff.String())

	records := []outcome.Record{
		outcome.Err("chaff-2.arr", "t", "x"),
		outcome.Err("code.arr", "t", "x"),
		outcome.Err("wheat-1.arr", "t", "x"),
		outcome.Err("chaff-1.arr", "t", "x"),
		outcome.Err("wheat-2.arr", "t", "x"),
	}
	g := Partition(records)
	assert.Equal(t, []outcome.Record{records[2], records[4]}, g.Wheats)
	assert.Equal(t, []outcome.Record{records[0], records[3]}, g.Chaffs)
	assert.Equal(t, []outcome.Record{records[1]}, g.Functionality)
}

func TestBuildInvalidity(t *testing.T) {
	wheats := []outcome.Record{
		outcome.Ok("wheat-1.arr", "t",
			block("Block1", "t.arr:1:0-5:0", pass("t.arr:2:0-3:0"), fail("t.arr:3:0-4:0")),
			erroredBlock("Block2", "t.arr:6:0-9:0"),
		),
		outcome.Ok("wheat-2.arr", "t",
			block("Block1", "t.arr:1:0-5:0", fail("t.arr:2:0-3:0"), pass("t.arr:3:0-4:0")),
		),
		outcome.Err("wheat-3.arr", "t", "Timeout"),
	}

	inv := BuildInvalidity(wheats)
	assert.Equal(t, []string{"t.arr:2:0-3:0", "t.arr:3:0-4:0"}, inv.TestLocations())
	assert.Equal(t, []string{"t.arr:6:0-9:0"}, inv.BlockLocations())
	assert.False(t, inv.TestInvalid("garbage"), "tests of errored blocks are not trusted")

	reversed := []outcome.Record{wheats[2], wheats[1], wheats[0]}
	assert.Equal(t, inv, BuildInvalidity(reversed))

	doubled := append(append([]outcome.Record{}, wheats...), wheats...)
	assert.Equal(t, inv, BuildInvalidity(doubled))
}

func TestBuildInvalidity_FailedWheatContributesNothing(t *testing.T) {
	inv := BuildInvalidity([]outcome.Record{outcome.Err("wheat.arr", "t", "Compile")})
	assert.True(t, inv.Empty())
	assert.Empty(t, inv.TestLocations())
	assert.True(t, BuildInvalidity(nil).Empty())
}

func TestGradeWheat(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		item, err := GradeWheat(outcome.Ok("impls/wheat-1.arr", "t",
			block("Block1", "b1", pass("t1"), pass("t2"))))
		require.NoError(t, err)
		assert.Equal(t, report.Item{
			Name: "wheat-1.arr", Score: 1, MaxScore: 1, Output: "Passed wheat!", Visibility: report.Visible,
		}, item)
	})

	t.Run("failed test", func(t *testing.T) {
		rec := outcome.Ok("wheat-1.arr", "t", block("Block1", "t.arr:1:0-5:0", fail("t.arr:3:0-4:0")))
		item, err := GradeWheat(rec)
		require.NoError(t, err)
		assert.Equal(t, 0.0, item.Score)
		assert.Equal(t, "Wheat failed test in block Block1", item.Output)
		assert.True(t, BuildInvalidity([]outcome.Record{rec}).TestInvalid("t.arr:3:0-4:0"))
	})

	t.Run("first violation wins", func(t *testing.T) {
		item, err := GradeWheat(outcome.Ok("wheat-1.arr", "t",
			block("Block1", "b1", pass("t1")),
			erroredBlock("Block2", "b2"),
			block("Block3", "b3", fail("t3")),
		))
		require.NoError(t, err)
		assert.Equal(t, "Wheat errored in block Block2", item.Output)
	})

	t.Run("failed to run", func(t *testing.T) {
		item, err := GradeWheat(outcome.Err("wheat-1.arr", "t", "OutOfMemory"))
		require.NoError(t, err)
		assert.Equal(t, 0.0, item.Score)
		assert.Equal(t, "Wheat failed to run: OutOfMemory", item.Output)
	})

	t.Run("missing result", func(t *testing.T) {
		_, err := GradeWheat(outcome.Record{ImplementationID: "wheat-1.arr"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvariant))
	})
}

func TestGradeChaff(t *testing.T) {
	inv := BuildInvalidity([]outcome.Record{
		outcome.Ok("wheat-1.arr", "t",
			block("Block1", "t.arr:1:0-5:0", fail("t.arr:3:0-4:0")),
			erroredBlock("Block3", "t.arr:10:0-12:0"),
		),
	})

	tests := []struct {
		name      string
		rec       outcome.Record
		wantScore float64
		wantMsg   string
	}{
		{
			name:      "masked failure only",
			rec:       outcome.Ok("chaff-1.arr", "t", block("Block1", "t.arr:1:0-5:0", fail("t.arr:3:0-4:0"))),
			wantScore: 0,
			wantMsg:   "Chaff not caught.",
		},
		{
			name: "errored block",
			rec: outcome.Ok("chaff-1.arr", "t",
				block("Block1", "t.arr:1:0-5:0", pass("t.arr:2:0-3:0")),
				erroredBlock("Block2", "t.arr:6:0-9:0")),
			wantScore: 1,
			wantMsg:   "Chaff caught; error in block Block2!",
		},
		{
			name: "masked errored block is skipped",
			rec: outcome.Ok("chaff-1.arr", "t",
				erroredBlock("Block3", "t.arr:10:0-12:0"),
				block("Block4", "t.arr:13:0-15:0", fail("t.arr:14:0-15:0"))),
			wantScore: 1,
			wantMsg:   "Chaff caught; test failed in block Block4!",
		},
		{
			name: "valid failure next to masked one",
			rec: outcome.Ok("chaff-1.arr", "t",
				block("Block1", "t.arr:1:0-5:0", fail("t.arr:3:0-4:0"), fail("t.arr:4:0-5:0"))),
			wantScore: 1,
			wantMsg:   "Chaff caught; test failed in block Block1!",
		},
		{
			name:      "all pass",
			rec:       outcome.Ok("chaff-1.arr", "t", block("Block1", "t.arr:1:0-5:0", pass("t.arr:4:0-5:0"))),
			wantScore: 0,
			wantMsg:   "Chaff not caught.",
		},
		{
			name:      "failed to run",
			rec:       outcome.Err("chaff-1.arr", "t", "Timeout"),
			wantScore: 1,
			wantMsg:   "Chaff caught; failed to run: Timeout!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := GradeChaff(inv, tt.rec)
			assert.Equal(t, tt.wantScore, item.Score)
			assert.Equal(t, 1.0, item.MaxScore)
			assert.Equal(t, tt.wantMsg, item.Output)
			assert.Equal(t, "chaff-1.arr", item.Name)
		})
	}
}

func TestGradeChaff_FailureAlwaysCaught(t *testing.T) {
	rec := outcome.Err("chaff-1.arr", "t", "Runtime")
	assert.Equal(t, 1.0, GradeChaff(Invalidity{}, rec).Score)

	everything := BuildInvalidity([]outcome.Record{
		outcome.Ok("wheat.arr", "t", erroredBlock("B", "b"), block("C", "c", fail("x"))),
	})
	assert.Equal(t, 1.0, GradeChaff(everything, rec).Score)
}

func TestGradeFunctionality(t *testing.T) {
	t.Run("failure", func(t *testing.T) {
		items := GradeFunctionality(outcome.Err("student/code.arr", "official.arr", "Timeout"))
		assert.Equal(t, []report.Item{{
			Name: "code.arr", Score: 0, MaxScore: 1, Output: "Error: Timeout", Visibility: report.Visible,
		}}, items)
	})

	t.Run("blocks", func(t *testing.T) {
		rec := outcome.Ok("code.arr", "official.arr",
			block("Block1", "b1", pass("t1"), pass("t2")),
			block("Block2", "b2", pass("t1"), fail("t2")),
			block("Block3", "b3", fail("t1"), fail("t2"), pass("t3")),
			erroredBlock("Block4", "b4"),
		)
		items := GradeFunctionality(rec)
		require.Len(t, items, 4)

		want := []struct {
			name   string
			score  float64
			output string
		}{
			{"Block1", 1, "Passed all tests in this block!"},
			{"Block2", 0, "Missing 1 test in this block."},
			{"Block3", 0, "Missing 2 tests in this block."},
			{"Block4", 0, "Block errored."},
		}
		for i, w := range want {
			assert.Equal(t, w.name, items[i].Name)
			assert.Equal(t, w.score, items[i].Score)
			assert.Equal(t, 1.0, items[i].MaxScore)
			assert.Equal(t, w.output, items[i].Output)
			assert.Equal(t, report.AfterPublished, items[i].Visibility)
		}

		assert.Equal(t, items, GradeFunctionality(rec), "grading is deterministic")
	})

	t.Run("no blocks", func(t *testing.T) {
		assert.Empty(t, GradeFunctionality(outcome.Ok("code.arr", "official.arr")))
	})
}

func TestSummarize(t *testing.T) {
	items := []report.Item{
		{Name: "a", Score: 1, MaxScore: 1},
		{Name: "b", Score: 0, MaxScore: 1},
	}

	got := Summarize("Chaffs", items, points.Weights{})
	assert.Equal(t, report.Item{Name: "Chaffs", Score: 1, MaxScore: 2, Visibility: report.Hidden}, got)

	weighted := Summarize("Chaffs", items, points.Weights{"a": 3, "b": 2})
	assert.Equal(t, 3.0, weighted.Score)
	assert.Equal(t, 5.0, weighted.MaxScore)

	empty := Summarize("Wheats", nil, nil)
	assert.Equal(t, 0.0, empty.Score)
	assert.Equal(t, 0.0, empty.MaxScore)
	assert.Equal(t, report.Hidden, empty.Visibility)
}

func TestGrade(t *testing.T) {
	records := []outcome.Record{
		outcome.Ok("student/code.arr", "official.arr",
			block("Block1", "o1", pass("o1t1")),
			block("Block2", "o2", fail("o2t1")),
		),
		outcome.Ok("impls/wheat-1.arr", "student-tests.arr",
			block("Block1", "t.arr:1:0-5:0", fail("t.arr:3:0-4:0"), pass("t.arr:4:0-5:0")),
		),
		outcome.Ok("impls/wheat-2.arr", "student-tests.arr",
			block("Block1", "t.arr:1:0-5:0", pass("t.arr:3:0-4:0"), pass("t.arr:4:0-5:0")),
		),
		outcome.Ok("impls/chaff-1.arr", "student-tests.arr",
			block("Block1", "t.arr:1:0-5:0", fail("t.arr:3:0-4:0"), pass("t.arr:4:0-5:0")),
		),
		outcome.Ok("impls/chaff-2.arr", "student-tests.arr",
			block("Block1", "t.arr:1:0-5:0", pass("t.arr:3:0-4:0"), fail("t.arr:4:0-5:0")),
		),
		outcome.Err("impls/chaff-3.arr", "student-tests.arr", "Timeout"),
	}
	table := &points.Table{
		Functionality: points.Weights{"Block2": 3},
		Testing:       points.Weights{"chaff-3.arr": 2},
	}

	rep, err := Grade(records, table, nil)
	require.NoError(t, err)

	assert.Equal(t, report.Visible, rep.Visibility)
	assert.Equal(t, report.Visible, rep.StdoutVisibility)

	names := make([]string, 0, len(rep.Tests))
	for _, it := range rep.Tests {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{
		"wheat-1.arr", "wheat-2.arr",
		"chaff-1.arr", "chaff-2.arr", "chaff-3.arr",
		"Block1", "Block2",
		"Functionality: code.arr", "Wheats", "Chaffs",
	}, names)

	byName := func(name string) report.Item {
		for _, it := range rep.Tests {
			if it.Name == name {
				return it
			}
		}
		t.Fatalf("no item %q", name)
		return report.Item{}
	}

	assert.Equal(t, "Chaff not caught.", byName("chaff-1.arr").Output)
	assert.Equal(t, "Chaff caught; test failed in block Block1!", byName("chaff-2.arr").Output)

	assert.Equal(t, report.Item{Name: "Functionality: code.arr", Score: 1, MaxScore: 4, Visibility: report.Hidden},
		byName("Functionality: code.arr"))
	assert.Equal(t, report.Item{Name: "Wheats", Score: 1, MaxScore: 2, Visibility: report.Hidden}, byName("Wheats"))
	assert.Equal(t, report.Item{Name: "Chaffs", Score: 3, MaxScore: 4, Visibility: report.Hidden}, byName("Chaffs"))
}

func TestGrade_Empty(t *testing.T) {
	rep, err := Grade(nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, rep.Tests, 2)
	assert.Equal(t, WheatSummaryName, rep.Tests[0].Name)
	assert.Equal(t, ChaffSummaryName, rep.Tests[1].Name)
}

func TestGrade_InvariantAbortsRun(t *testing.T) {
	_, err := Grade([]outcome.Record{{ImplementationID: "wheat-1.arr"}}, nil, nil)
	assert.ErrorIs(t, err, ErrInvariant)
}
