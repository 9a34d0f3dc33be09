// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rlsim

import (
	"context"
	"io"
	"log"
	"strconv"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/simbrain/store"
	"github.com/goki/gi/gi"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// ConfigTrialLog configures the per-trial log table
func (ss *Sim) ConfigTrialLog() {
	dt := &etable.Table{}
	dt.SetMetaData("name", "TrialLog")
	dt.SetMetaData("desc", "Record of each trial: steps to the goal, reward and TD error")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Run", etensor.INT64, nil, nil},
		{"Trial", etensor.INT64, nil, nil},
		{"Scenario", etensor.STRING, nil, nil},
		{"Steps", etensor.INT64, nil, nil},
		{"Reward", etensor.FLOAT64, nil, nil},
		{"TDError", etensor.FLOAT64, nil, nil},
		{"PredError", etensor.FLOAT64, nil, nil},
		{"Goal", etensor.FLOAT64, nil, nil},
		{"Secs", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
	ss.TrialLog = dt
}

// LogTrial adds a row to the trial log, and records the trial in the
// run history if open
func (ss *Sim) LogTrial(ts *TrialStats) {
	dt := ss.TrialLog
	row := dt.Rows
	dt.SetNumRows(row + 1)

	goal := 0.0
	if ts.Goal {
		goal = 1
	}
	dt.SetCellFloat("Run", row, float64(ss.NRuns))
	dt.SetCellFloat("Trial", row, float64(ts.Trial))
	dt.SetCellString("Scenario", row, ss.Scenario.Name)
	dt.SetCellFloat("Steps", row, float64(ts.Steps))
	dt.SetCellFloat("Reward", row, float64(ts.Reward))
	dt.SetCellFloat("TDError", row, float64(ts.TDError))
	dt.SetCellFloat("PredError", row, float64(ts.PredError))
	dt.SetCellFloat("Goal", row, goal)
	dt.SetCellFloat("Secs", row, ts.Secs)

	if ss.History == nil || ss.RunID == 0 {
		return
	}
	tr := store.Trial{RunID: ss.RunID, Trial: ts.Trial, Steps: ts.Steps, Reward: ts.Reward,
		TDError: ts.TDError, Goal: ts.Goal, Secs: ts.Secs}
	if err := ss.History.AddTrial(context.Background(), tr); err != nil {
		log.Printf("Sim LogTrial: %v\n", err)
	}
}

// MeanSteps returns the mean number of steps per trial over the log
func (ss *Sim) MeanSteps() float64 {
	if ss.TrialLog.Rows == 0 {
		return 0
	}
	return agg.Mean(etable.NewIdxView(ss.TrialLog), "Steps")[0]
}

// GoalRate returns the proportion of logged trials that reached the goal
func (ss *Sim) GoalRate() float64 {
	if ss.TrialLog.Rows == 0 {
		return 0
	}
	return agg.Mean(etable.NewIdxView(ss.TrialLog), "Goal")[0]
}

// WriteTrialLog writes the trial log as CSV
func (ss *Sim) WriteTrialLog(w io.Writer) error {
	return ss.TrialLog.WriteCSV(w, etable.Comma, etable.Headers)
}

// SaveTrialLog saves the trial log to a CSV file
func (ss *Sim) SaveTrialLog(filename string) error {
	return ss.TrialLog.SaveCSV(gi.FileName(filename), etable.Comma, etable.Headers)
}
