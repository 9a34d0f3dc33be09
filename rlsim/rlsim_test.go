// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rlsim

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/simbrain/odorworld"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

func testConfig(t *testing.T) *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestSim(t *testing.T, cfg *Config) *Sim {
	ss, err := NewSim(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ss.Close() })
	return ss
}

func TestConfigDefaults(t *testing.T) {
	cfg := testConfig(t)
	if cfg.NTrials != 5 || cfg.Alpha != 5 || cfg.Lambda != 0 || cfg.Epsilon != 0.25 || cfg.Gamma != 0.4 || cfg.HitRadius != 70 {
		t.Errorf("config defaults: %+v", cfg)
	}
	if cfg.Scenario != "All-Three" || cfg.Seed != 1 {
		t.Errorf("config defaults: %+v", cfg)
	}
}

func TestConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(fn, []byte("NTrials = 12\nScenario = \"One Object\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(fn)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NTrials != 12 || cfg.Scenario != "One Object" || cfg.Gamma != 0.4 {
		t.Errorf("config from file: %+v", cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("missing config file should fail")
	}
}

func TestGoalReached(t *testing.T) {
	tests := []struct {
		dist float32
		goal bool
	}{
		{69.9, true},
		{70.1, false},
		{70, false},
		{0, true},
	}
	for _, tt := range tests {
		if g := GoalReached(tt.dist, 70); g != tt.goal {
			t.Errorf("GoalReached(%v, 70) = %v, want %v", tt.dist, g, tt.goal)
		}
	}
}

func TestControlPanel(t *testing.T) {
	cp := NewControlPanel(testConfig(t))
	flds := cp.Fields()
	want := []string{FieldTrials, FieldGamma, FieldLambda, FieldEpsilon, FieldAlpha}
	if strings.Join(flds, "|") != strings.Join(want, "|") {
		t.Errorf("fields: %v, want %v", flds, want)
	}
	sn, err := cp.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if sn.NTrials != 5 || sn.Gamma != 0.4 || sn.Epsilon != 0.25 || sn.Alpha != 5 {
		t.Errorf("snapshot: %+v", sn)
	}

	if err := cp.SetText(FieldGamma, " 0.9 "); err != nil {
		t.Fatal(err)
	}
	if sn, _ = cp.Snapshot(); sn.Gamma != 0.9 {
		t.Errorf("gamma: %v, want 0.9", sn.Gamma)
	}

	bad := []struct{ field, txt string }{
		{FieldEpsilon, "abc"},
		{FieldTrials, "2.5"},
		{FieldTrials, "-1"},
		{FieldLambda, "1.5"},
		{FieldAlpha, ""},
	}
	for _, b := range bad {
		cp := NewControlPanel(testConfig(t))
		cp.SetText(b.field, b.txt)
		_, err := cp.Snapshot()
		if err == nil {
			t.Errorf("%s = %q should fail", b.field, b.txt)
			continue
		}
		if !strings.Contains(err.Error(), b.field) {
			t.Errorf("error should name the field %q: %v", b.field, err)
		}
	}
	if err := cp.SetText("Momentum", "1"); err == nil {
		t.Errorf("unknown field should fail")
	}
	if _, err := cp.Text("Momentum"); err == nil {
		t.Errorf("unknown field should fail")
	}
}

func TestScenarios(t *testing.T) {
	scs := DefaultScenarios()
	for _, nm := range []string{"All-Three", "Cheese-Flower", "One Object"} {
		sc, err := ScenarioByName(scs, nm)
		if err != nil {
			t.Fatal(err)
		}
		if err := sc.Validate(); err != nil {
			t.Error(err)
		}
	}
	sc, _ := ScenarioByName(scs, "All-Three")
	if len(sc.Entities) != 3 || sc.Entities[2].Type != odorworld.Candle {
		t.Errorf("All-Three entities: %+v", sc.Entities)
	}

	bad := `
- name: Bad
  mouse: {x: 1, y: 1}
  entities:
    - {name: Cheese, type: Swiss, x: 10, y: 10}
  goals: [Flower]
`
	if _, err := ReadScenarios(strings.NewReader(bad)); err == nil {
		t.Errorf("goal that is not an entity should fail")
	}
	badType := `
- name: Bad
  entities:
    - {name: Cheese, type: Dragon, x: 10, y: 10}
  goals: [Cheese]
`
	if _, err := ReadScenarios(strings.NewReader(badType)); err == nil {
		t.Errorf("unknown entity type should fail")
	}
	empty := `
- name: Ok
  entities:
    - {name: Cheese, type: Swiss, x: 10, y: 10}
  goals: [Cheese]
-
`
	if _, err := ReadScenarios(strings.NewReader(empty)); err == nil {
		t.Errorf("empty scenario entry should fail")
	}
	dup := `
- name: Same
  entities:
    - {name: Cheese, type: Swiss, x: 10, y: 10}
  goals: [Cheese]
- name: Same
  entities:
    - {name: Flower, type: Flower, x: 20, y: 20}
  goals: [Flower]
`
	if _, err := ReadScenarios(strings.NewReader(dup)); err == nil {
		t.Errorf("duplicate scenario names should fail")
	}
	if _, err := ScenarioByName([]*Scenario{nil}, "Same"); err == nil {
		t.Errorf("nil scenario should not match")
	}
}

func TestSetScenario(t *testing.T) {
	ss := newTestSim(t, testConfig(t))
	if len(ss.World.Entities) != 4 {
		t.Errorf("All-Three world: %d entities, want 4", len(ss.World.Entities))
	}
	if err := ss.SetScenario("One Object"); err != nil {
		t.Fatal(err)
	}
	if len(ss.World.Entities) != 2 {
		t.Errorf("One Object world: %d entities, want 2", len(ss.World.Entities))
	}
	ch, err := ss.World.EntityByName("Cheese")
	if err != nil {
		t.Fatal(err)
	}
	if ch.Smell == nil || ch.Smell.Vec[NSmell-1] != 1 {
		t.Errorf("cheese smell: %+v", ch.Smell)
	}
	if ss.Mouse.Pos.X != 43 || ss.Mouse.Heading != 0 {
		t.Errorf("mouse reset: %v %v", ss.Mouse.Pos, ss.Mouse.Heading)
	}
	if err := ss.SetScenario("Maze"); err == nil {
		t.Errorf("unknown scenario should fail")
	}

	ss.Scenarios = append(ss.Scenarios,
		&Scenario{Name: "NoGoal", Entities: []EntitySpec{{Name: "Fish", Type: odorworld.Fish}}},
		&Scenario{Name: "MouseClash", Entities: []EntitySpec{{Name: ss.Mouse.Nm, Type: odorworld.Swiss}}, Goals: []string{ss.Mouse.Nm}})
	for _, nm := range []string{"NoGoal", "MouseClash"} {
		if err := ss.SetScenario(nm); err == nil {
			t.Errorf("invalid scenario %s should fail", nm)
		}
		if len(ss.World.Entities) != 2 || ss.Scenario.Name != "One Object" {
			t.Errorf("failed SetScenario %s changed the world: %d entities, scenario %s", nm, len(ss.World.Entities), ss.Scenario.Name)
		}
		if _, err := ss.World.EntityByName("Cheese"); err != nil {
			t.Errorf("failed SetScenario %s removed Cheese: %v", nm, err)
		}
	}
}

func TestNetwork(t *testing.T) {
	ss := newTestSim(t, testConfig(t))
	for _, nm := range []string{"Left", "Right", "Outputs", "Reward", "Value", "TDError", "DeltaReward", "PredLeft", "PredRight",
		"Pursue Swiss", "Pursue Flower", "Pursue Candle"} {
		if _, err := ss.Net.GroupByNameTry(nm); err != nil {
			t.Error(err)
		}
	}
	outs := ss.Net.GroupByName("Outputs")
	if !outs.WTA.On || !outs.WTA.UseRandom || outs.WTA.RandomProb != 0.25 {
		t.Errorf("outputs WTA: %+v", outs.WTA)
	}
	for _, pj := range ss.Critic.Prjns {
		if pj.WtMean() != 0 {
			t.Errorf("critic weights should start at 0: %v", pj.WtMean())
		}
	}
	vh := ss.Vehicles[0].Group
	pj := ss.Net.FindPrjn(outs, vh)
	if pj == nil || pj.Syn(0, 3) == nil || pj.Syn(0, 3).Wt != 10 {
		t.Errorf("output to speed weight: %v", pj)
	}
}

func TestTickTDError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scenario = "One Object"
	ss := newTestSim(t, cfg)
	ss.ResetTrial()
	ss.Tick()
	if ss.State.Winner < 0 || ss.State.Winner >= len(VehicleObjs) {
		t.Fatalf("winner: %v", ss.State.Winner)
	}
	for i := 0; i < 5; i++ {
		vprv := ss.State.Value
		ss.Tick()
		st := ss.State
		cor := st.Reward + ss.TD.Gamma*st.Value - vprv
		if math32.Abs(st.TDError-cor) > difTol {
			t.Errorf("tick %d TD error: %v, cor %v", st.Tick, st.TDError, cor)
		}
		if v := ss.Net.GroupByName("TDError").Neurons[0].Act; v != st.TDError {
			t.Errorf("TDError unit: %v, want %v", v, st.TDError)
		}
	}
	if ss.State.Reward <= 0 {
		t.Errorf("cheese smell should give positive reward: %v", ss.State.Reward)
	}
}

func TestPursuerReachesGoal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scenario = "One Object"
	cfg.NTrials = 3
	cfg.MaxSteps = 3000
	ss := newTestSim(t, cfg)
	if err := ss.RunTrials(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ss.TrialLog.Rows != 3 {
		t.Fatalf("trial log rows: %d, want 3", ss.TrialLog.Rows)
	}
	if gr := ss.GoalRate(); gr != 1 {
		t.Errorf("goal rate: %v, want 1", gr)
	}
	if ms := ss.MeanSteps(); ms <= 0 || ms >= 3000 {
		t.Errorf("mean steps: %v", ms)
	}
	if txt, _ := ss.Panel.Text(FieldTrials); txt != "3" {
		t.Errorf("trials field after run: %q, want 3", txt)
	}
	var b bytes.Buffer
	if err := ss.WriteTrialLog(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Steps") {
		t.Errorf("CSV log missing header: %s", b.String())
	}
}

func TestRunTrialsBadPanel(t *testing.T) {
	ss := newTestSim(t, testConfig(t))
	ss.Panel.SetText(FieldEpsilon, "lots")
	err := ss.RunTrials(context.Background())
	if err == nil || !strings.Contains(err.Error(), FieldEpsilon) {
		t.Errorf("malformed epsilon should fail naming the field: %v", err)
	}
	if ss.TrialLog.Rows != 0 {
		t.Errorf("no trials should run: %d", ss.TrialLog.Rows)
	}
}

func TestStartStop(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSteps = 0
	ss := newTestSim(t, cfg)
	ss.Panel.SetText(FieldTrials, "1000000")
	ctx := context.Background()
	if err := ss.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ss.Start(ctx); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start: %v, want ErrRunning", err)
	}
	ss.Stop()
	if err := ss.Wait(); err != nil {
		t.Errorf("Wait after Stop: %v", err)
	}
	if ss.IsRunning() {
		t.Errorf("still running after Wait")
	}
	if ss.TrialLog.Rows >= 1000000 {
		t.Errorf("Stop did not stop the run")
	}
	if txt, _ := ss.Panel.Text(FieldTrials); txt != "1000000" {
		t.Errorf("Trials after run: %q, want the starting count", txt)
	}
}

func TestContextCancel(t *testing.T) {
	ss := newTestSim(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ss.RunTrials(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: %v, want context.Canceled", err)
	}
}

func TestHistoryAndFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Scenario = "One Object"
	cfg.NTrials = 2
	cfg.MaxSteps = 3000
	cfg.DBFile = filepath.Join(dir, "history.db")
	cfg.LogFile = filepath.Join(dir, "trials.csv")
	cfg.WtsFile = filepath.Join(dir, "wts.json.gz")
	ss := newTestSim(t, cfg)
	ctx := context.Background()
	if err := ss.RunTrials(ctx); err != nil {
		t.Fatal(err)
	}
	runs, err := ss.History.Runs(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].NTrials != 2 || runs[0].Scenario != "One Object" {
		t.Errorf("history runs: %+v", runs)
	}
	for _, fn := range []string{cfg.LogFile, cfg.WtsFile} {
		if _, err := os.Stat(fn); err != nil {
			t.Errorf("file not saved: %v", err)
		}
	}
	if err := ss.Net.OpenWtsJSON(cfg.WtsFile); err != nil {
		t.Errorf("saved weights do not open: %v", err)
	}
}
