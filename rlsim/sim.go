// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rlsim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/emer/emergent/params"
	"github.com/emer/emergent/timer"
	"github.com/emer/etable/etable"
	"github.com/emer/simbrain/coupling"
	"github.com/emer/simbrain/network"
	"github.com/emer/simbrain/odorworld"
	"github.com/emer/simbrain/rl"
	"github.com/emer/simbrain/rules"
	"github.com/emer/simbrain/store"
	"github.com/emer/simbrain/vehicles"
)

// MouseName is the name of the agent
const MouseName = "Mouse"

// NSmell is the number of smell components sensed
const NSmell = 6

// Sensor geometry of the mouse
const (
	SensorRadius     = 50
	SensorAngle      = 22.5
	ObjectDispersion = 300
	SmellDispersion  = 350
)

// VehicleObjs are the object types pursued by the vehicles, in the order
// of the output units
var VehicleObjs = []odorworld.EntityTypes{odorworld.Swiss, odorworld.Flower, odorworld.Candle}

// ErrRunning is returned by Start when a run is already in progress
var ErrRunning = errors.New("rlsim: already running")

// ParamSets are the network parameters: Base is always applied
var ParamSets = map[string]*params.Sheet{
	"Base": {
		{Sel: ".Input", Desc: "sensory inputs are not bounded",
			Params: params.Params{
				"Group.Linear.Bound.Clip": "false",
			}},
		{Sel: "#Value", Desc: "value estimate is not bounded",
			Params: params.Params{
				"Group.Linear.Bound.Clip": "false",
			}},
		{Sel: ".Pred", Desc: "predictions start at 0",
			Params: params.Params{
				"Prjn.WtInit.Var": "0",
			}},
		{Sel: ".Critic", Desc: "value starts at 0",
			Params: params.Params{
				"Prjn.WtInit.Var": "0",
			}},
		{Sel: ".Actor", Desc: "small random initial preferences",
			Params: params.Params{
				"Prjn.WtInit.Var": "0.1",
			}},
	},
}

// Sim is the RL vehicles simulation: a mouse in an odor world chooses,
// through a winner-take-all group, which Braitenberg vehicle drives it.
// The choice is learned by an actor-critic using the TD error.
type Sim struct {
	Config    Config              `desc:"configuration"`
	Panel     *ControlPanel       `desc:"editable run parameters"`
	Scenarios []*Scenario         `desc:"available scenarios"`
	Scenario  *Scenario           `desc:"the current scenario"`
	TD        rl.TDParams         `view:"inline" desc:"TD parameters -- set from the Panel at the start of each Run"`
	World     *odorworld.World    `desc:"the odor world"`
	Mouse     *odorworld.Entity   `desc:"the agent"`
	Net       *network.Network    `desc:"the network"`
	Cpls      *coupling.Manager   `desc:"sensor and effector couplings"`
	Vehicles  []*vehicles.Vehicle `desc:"vehicles, one per output unit"`
	Critic    *rl.Critic          `desc:"learns the value of the sensory inputs"`
	Actor     *rl.Actor           `desc:"learns the choice of vehicle"`
	Preds     []*rl.Predictor     `desc:"learn to predict the next left and right inputs"`
	DA        rl.SendDA           `view:"-" desc:"receivers of the TD error"`
	State     TickState           `inactive:"+" desc:"state of the current tick"`
	TrialLog  *etable.Table       `view:"no-inline" desc:"per-trial log"`
	History   *store.History      `view:"-" desc:"run history database, if Config.DBFile is set"`
	RunID     int64               `inactive:"+" desc:"history id of the current run"`
	NRuns     int                 `inactive:"+" desc:"number of Runs so far"`
	stop      atomic.Bool
	mu        sync.Mutex
	done      chan struct{}
	runErr    error
	trialTmr  timer.Time
}

// TickState is the state computed on one tick
type TickState struct {
	Tick      int     `desc:"tick within the trial"`
	Reward    float32 `desc:"reward on this tick"`
	RewardPrv float32 `desc:"reward on the previous tick"`
	Value     float32 `desc:"value estimate V(t)"`
	TDError   float32 `desc:"TD error"`
	PredError float32 `desc:"mean absolute sensory prediction error"`
	Winner    int     `desc:"index of the chosen vehicle"`
	Goal      bool    `desc:"true if a goal entity is within the hit radius"`
}

// NewSim returns a configured simulation
func NewSim(cfg *Config) (*Sim, error) {
	ss := &Sim{Config: *cfg}
	if err := ss.ConfigAll(); err != nil {
		return nil, err
	}
	return ss, nil
}

// ConfigAll configures the scenarios, world, network and logs
func (ss *Sim) ConfigAll() error {
	ss.Panel = NewControlPanel(&ss.Config)
	ss.TD.Defaults()
	ss.TD.Gamma = ss.Config.Gamma
	ss.TD.Lambda = ss.Config.Lambda
	ss.TD.Epsilon = ss.Config.Epsilon
	ss.TD.Alpha = ss.Config.Alpha
	if ss.Config.ScenarioFile != "" {
		scs, err := OpenScenarios(ss.Config.ScenarioFile)
		if err != nil {
			return err
		}
		ss.Scenarios = scs
	} else {
		ss.Scenarios = DefaultScenarios()
	}
	if err := ss.ConfigWorld(); err != nil {
		return err
	}
	if err := ss.ConfigNet(); err != nil {
		return err
	}
	if err := ss.SetScenario(ss.Config.Scenario); err != nil {
		return err
	}
	ss.ConfigTrialLog()
	return nil
}

// ConfigWorld makes the world and the mouse with its sensors and effectors
func (ss *Sim) ConfigWorld() error {
	ss.World = odorworld.NewWorld("RLWorld", ss.Config.Width, ss.Config.Height)
	ss.World.Dsc = "odor world for the RL vehicles"
	mouse, err := ss.World.NewEntity(MouseName, odorworld.Mouse, 0, 0)
	if err != nil {
		return err
	}
	ss.Mouse = mouse
	mouse.AddDefaultEffectors()
	mouse.AddSensor(odorworld.NewSmellSensor("Smell-Left", NSmell, SensorRadius, SensorAngle))
	mouse.AddSensor(odorworld.NewSmellSensor("Smell-Right", NSmell, SensorRadius, -SensorAngle))
	for _, typ := range VehicleObjs {
		left, right := vehicles.ObjectSensors(mouse, typ, SensorRadius, SensorAngle)
		left.(*odorworld.ObjectSensor).Decay.Dispersion = ObjectDispersion
		right.(*odorworld.ObjectSensor).Decay.Dispersion = ObjectDispersion
	}
	return ss.World.SetAgent(mouse)
}

// ConfigNet makes the network: smell inputs drive the winner-take-all
// choice among the vehicles, the reward and the value, and predictions of
// the next inputs
func (ss *Sim) ConfigNet() error {
	net := network.NewNetwork("RLVehicles")
	ss.Net = net
	net.SetRandSeed(ss.Config.Seed)
	ss.Cpls = coupling.NewManager("RLVehicles")

	left := net.AddGroup("Left", NSmell, rules.Linear)
	right := net.AddGroup("Right", NSmell, rules.Linear)
	left.Cls = "Input"
	right.Cls = "Input"
	outs := net.AddWTA("Outputs", len(VehicleObjs))
	outs.WTA.UseRandom = true
	outs.WTA.RandomProb = ss.Config.Epsilon
	lbls := make([]string, len(VehicleObjs))
	for i, typ := range VehicleObjs {
		lbls[i] = "Pursue " + typ.String()
	}
	outs.SetLabels(lbls...)

	rew := net.AddGroup("Reward", 1, rules.Linear)
	val := net.AddGroup("Value", 1, rules.Linear)
	tde := net.AddGroup("TDError", 1, rules.Linear)
	dr := net.AddGroup("DeltaReward", 1, rules.Linear)
	tde.Neurons[0].SetClamped(true)
	dr.Neurons[0].SetClamped(true)
	predL := net.AddGroup("PredLeft", NSmell, rules.Linear)
	predR := net.AddGroup("PredRight", NSmell, rules.Linear)

	var actPjs, valPjs []*network.Prjn
	for _, in := range []*network.Group{left, right} {
		pj := net.ConnectGroups(in, outs, network.NewFull())
		pj.Cls = "Actor"
		pj.Learn = true
		actPjs = append(actPjs, pj)
		pj = net.ConnectGroups(in, val, network.NewFull())
		pj.Cls = "Critic"
		pj.Learn = true
		valPjs = append(valPjs, pj)
	}
	// reward is the last smell component on the left
	if _, err := net.ConnectUnits(left, NSmell-1, rew, 0, 1); err != nil {
		return err
	}

	var predPjs [2][]*network.Prjn
	for i, pr := range []*network.Group{predL, predR} {
		in := left
		if i == 1 {
			in = right
		}
		for _, snd := range []*network.Group{in, outs} {
			pj := net.ConnectGroups(snd, pr, network.NewFull())
			pj.Cls = "Pred"
			pj.Learn = true
			predPjs[i] = append(predPjs[i], pj)
		}
	}

	vb := vehicles.NewBuilder(net, ss.Cpls)
	vb.Params.Clamp = false
	ss.Vehicles = nil
	for i, typ := range VehicleObjs {
		sl, _ := ss.Mouse.SensorByName(typ.String() + "L")
		sr, _ := ss.Mouse.SensorByName(typ.String() + "R")
		vh, err := vb.AddPursuer(lbls[i], ss.Mouse, typ, sl, sr)
		if err != nil {
			return err
		}
		if _, err := net.ConnectUnits(outs, i, vh.Group, vehicles.Speed, 10); err != nil {
			return err
		}
		ss.Vehicles = append(ss.Vehicles, vh)
	}

	sl, _ := ss.Mouse.SensorByName("Smell-Left")
	sr, _ := ss.Mouse.SensorByName("Smell-Right")
	ss.Cpls.MustCouple("Smell-Left", sl, coupling.GroupClamp(left))
	ss.Cpls.MustCouple("Smell-Right", sr, coupling.GroupClamp(right))

	if _, err := net.ApplyParams(ParamSets["Base"], false); err != nil {
		log.Println(err)
	}
	net.InitWts()

	var err error
	if ss.Critic, err = rl.NewCritic(0, valPjs...); err != nil {
		return err
	}
	if ss.Actor, err = rl.NewActor(actPjs...); err != nil {
		return err
	}
	ss.Preds = nil
	for i, tgt := range []*network.Group{left, right} {
		pr, err := rl.NewPredictor(tgt, predPjs[i]...)
		if err != nil {
			return err
		}
		pr.Lrate = ss.Config.PredLrate
		ss.Preds = append(ss.Preds, pr)
	}
	ss.DA = nil
	ss.DA.Add(ss.Critic, ss.Actor)
	ss.ClearWeights()
	return nil
}

// group returns the group of given name, which must exist
func (ss *Sim) group(name string) *network.Group {
	gp, err := ss.Net.GroupByNameTry(name)
	if err != nil {
		panic(err)
	}
	return gp
}

// SetScenario sets the current scenario by name, placing its entities in
// the world and resetting the mouse.  The scenario is validated before
// the current entities are removed, so on error the world is unchanged.
func (ss *Sim) SetScenario(name string) error {
	sc, err := ScenarioByName(ss.Scenarios, name)
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}
	for _, es := range sc.Entities {
		if es.Name == ss.Mouse.Nm {
			return fmt.Errorf("SetScenario %s: entity %q has the name of the mouse", sc.Name, es.Name)
		}
	}
	for _, en := range append([]*odorworld.Entity(nil), ss.World.Entities...) {
		if en != ss.Mouse {
			ss.World.RemoveEntity(en.Nm)
		}
	}
	for _, es := range sc.Entities {
		en, err := ss.World.NewEntity(es.Name, es.Type, es.X, es.Y)
		if err != nil {
			return err
		}
		smell := es.Smell
		if smell == nil {
			smell = DefaultSmell(es.Type)
		}
		if smell != nil {
			disp := es.Dispersion
			if disp == 0 {
				disp = SmellDispersion
			}
			en.Smell = odorworld.NewSmellSource(smell, disp)
		}
	}
	ss.Scenario = sc
	ss.Config.Scenario = sc.Name
	ss.ResetMouse()
	return nil
}

// ResetMouse puts the mouse at its starting place for the scenario
func (ss *Sim) ResetMouse() {
	pl := ss.Scenario.Mouse
	ss.Mouse.SetPos(pl.X, pl.Y)
	ss.Mouse.SetHeading(pl.Heading)
	ss.World.ClampPos(ss.Mouse)
	ss.World.UpdateSensors()
}

// ClearWeights zeroes the weights into the value unit, and the critic traces
func (ss *Sim) ClearWeights() {
	for _, pj := range ss.Critic.Prjns {
		pj.SetAllWts(0)
	}
	ss.Critic.Init()
}

// Goal returns true if a goal entity is within HitRadius of the mouse.
// The distance is truncated to an integer before the comparison.
func (ss *Sim) Goal() bool {
	for _, gl := range ss.Scenario.Goals {
		en, err := ss.World.EntityByName(gl)
		if err != nil {
			continue
		}
		if GoalReached(ss.Mouse.DistTo(en), ss.Config.HitRadius) {
			return true
		}
	}
	return false
}

// GoalReached is the goal test: int(dist) < hitRadius
func GoalReached(dist, hitRadius float32) bool {
	return float32(int(dist)) < hitRadius
}

// ResetTrial clears activations, learning state and pending effector
// commands, and puts the mouse back at its starting place
func (ss *Sim) ResetTrial() {
	ss.Net.InitActs()
	ss.Critic.Init()
	ss.Actor.Init()
	for _, pr := range ss.Preds {
		pr.Init()
	}
	ss.ResetMouse()
	ss.World.NewTrial()
	ss.State = TickState{Winner: -1}
}

// Tick runs one step of the simulation:
// couplings, inputs and reward, TD learning, the choice of vehicle,
// the chosen vehicle, and then the world.
func (ss *Sim) Tick() {
	st := &ss.State
	ss.Cpls.Update()

	left, right, rew := ss.group("Left"), ss.group("Right"), ss.group("Reward")
	ss.Net.CycleGroups(left, right, rew)

	st.RewardPrv = st.Reward
	st.Reward = rew.Neurons[0].Act
	st.Value = ss.Critic.Value()
	st.TDError = ss.TD.TDError(st.Reward, st.Value, ss.Critic.ValPrv)
	ss.DA.SendDA(st.TDError)
	ss.Critic.Learn(&ss.TD)
	ss.Actor.Learn(&ss.TD)

	ss.group("Value").SetActs([]float32{st.Value})
	ss.group("TDError").ApplyExt([]float32{st.TDError})
	ss.group("DeltaReward").ApplyExt([]float32{st.Reward - st.RewardPrv})

	perr := float32(0)
	for _, pr := range ss.Preds {
		perr += pr.Error()
		pr.Learn()
	}
	st.PredError = perr / float32(len(ss.Preds))

	outs := ss.group("Outputs")
	ss.Net.CycleGroups(outs)
	st.Winner = outs.Winner
	for i, vh := range ss.Vehicles {
		on := i == st.Winner
		vh.SetActive(on)
		if on {
			ss.Net.CycleGroups(vh.Group)
			continue
		}
		for _, ni := range []int{vehicles.TurnL, vehicles.Speed, vehicles.TurnR} {
			vh.Group.Neurons[ni].Act = 0
		}
	}

	ss.Critic.Step()
	ss.Actor.Step(st.Winner)
	for _, pr := range ss.Preds {
		pr.Step()
	}

	ss.World.Step()
	st.Tick++
	st.Goal = ss.Goal()
}

// TrialStats summarize one trial
type TrialStats struct {
	Trial     int
	Steps     int
	Reward    float32
	TDError   float32
	PredError float32
	Goal      bool
	Secs      float64
}

// RunTrial runs one trial until the goal is reached, Stop is called,
// the context is done, or MaxSteps ticks have run
func (ss *Sim) RunTrial(ctx context.Context, trial int) (TrialStats, error) {
	ss.ResetTrial()
	ts := TrialStats{Trial: trial}
	ss.trialTmr.Reset()
	ss.trialTmr.Start()
	var err error
	for {
		if ss.stop.Load() {
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		if ss.Config.MaxSteps > 0 && ts.Steps >= ss.Config.MaxSteps {
			break
		}
		ss.Tick()
		ts.Steps++
		ts.Reward += ss.State.Reward
		ts.TDError += abs32(ss.State.TDError)
		ts.PredError += ss.State.PredError
		if ss.State.Goal {
			ts.Goal = true
			break
		}
	}
	ss.trialTmr.Stop()
	ts.Secs = ss.trialTmr.TotalSecs()
	if ts.Steps > 0 {
		ts.TDError /= float32(ts.Steps)
		ts.PredError /= float32(ts.Steps)
	}
	return ts, err
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Snapshot reads the control panel into the TD and exploration parameters
func (ss *Sim) Snapshot() (Snapshot, error) {
	sn, err := ss.Panel.Snapshot()
	if err != nil {
		return sn, err
	}
	ss.TD.Gamma = sn.Gamma
	ss.TD.Lambda = sn.Lambda
	ss.TD.Epsilon = sn.Epsilon
	ss.TD.Alpha = sn.Alpha
	ss.group("Outputs").WTA.RandomProb = sn.Epsilon
	return sn, nil
}

// RunTrials reads the control panel and runs its number of trials on the
// calling goroutine.  A malformed panel field is returned as an error
// before anything is run.  The panel is read once: during the run the
// Trials field shows the trials remaining, and it is set back to the
// starting count when the run ends, so an edit to Trials made during a
// run is overwritten.  Edits to the other fields apply to the next run.
func (ss *Sim) RunTrials(ctx context.Context) error {
	ss.stop.Store(false)
	return ss.runTrials(ctx)
}

func (ss *Sim) runTrials(ctx context.Context) error {
	sn, err := ss.Snapshot()
	if err != nil {
		return err
	}
	ss.NRuns++
	ss.beginHistory(ctx)
	defer ss.Panel.setTrials(sn.NTrials)
	for i := 1; i <= sn.NTrials; i++ {
		if ss.stop.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		ss.Panel.setTrials(sn.NTrials + 1 - i)
		ts, err := ss.RunTrial(ctx, i)
		ss.LogTrial(&ts)
		if err != nil {
			return err
		}
		if ss.Config.Verbose {
			log.Printf("Run: %d\tTrial: %d\tSteps: %d\tGoal: %v\tReward: %.4g\tTDError: %.4g\n", ss.NRuns, ts.Trial, ts.Steps, ts.Goal, ts.Reward, ts.TDError)
		}
	}
	return ss.saveRun()
}

// saveRun saves the trial log and weights if configured
func (ss *Sim) saveRun() error {
	if ss.Config.LogFile != "" {
		if err := ss.SaveTrialLog(ss.Config.LogFile); err != nil {
			return err
		}
	}
	if ss.Config.WtsFile != "" {
		if err := ss.Net.SaveWtsJSON(ss.Config.WtsFile); err != nil {
			return err
		}
	}
	return nil
}

// Start runs RunTrials on a background goroutine, with the same handling
// of the control panel.  Use Stop to stop it and Wait for it to finish.
func (ss *Sim) Start(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.done != nil {
		select {
		case <-ss.done:
		default:
			return ErrRunning
		}
	}
	ss.stop.Store(false)
	done := make(chan struct{})
	ss.done = done
	ss.runErr = nil
	go func() {
		err := ss.runTrials(ctx)
		ss.mu.Lock()
		ss.runErr = err
		ss.mu.Unlock()
		close(done)
	}()
	return nil
}

// Stop stops the current run at the next tick
func (ss *Sim) Stop() {
	ss.stop.Store(true)
}

// IsRunning returns true while a run started by Start is in progress
func (ss *Sim) IsRunning() bool {
	ss.mu.Lock()
	done := ss.done
	ss.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Wait blocks until the run started by Start finishes, returning its error
func (ss *Sim) Wait() error {
	ss.mu.Lock()
	done := ss.done
	ss.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.runErr
}

// OpenHistory opens the run history database
func (ss *Sim) OpenHistory(ctx context.Context, path string) error {
	h, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	ss.History = h
	return nil
}

// beginHistory records a new run in the history, opening it if configured.
// Failures are logged and disable the history.
func (ss *Sim) beginHistory(ctx context.Context) {
	if ss.History == nil && ss.Config.DBFile != "" {
		if err := ss.OpenHistory(ctx, ss.Config.DBFile); err != nil {
			log.Printf("Sim beginHistory: %v\n", err)
			return
		}
	}
	if ss.History == nil {
		return
	}
	rn := &store.Run{Scenario: ss.Scenario.Name, Seed: ss.Config.Seed, Gamma: ss.TD.Gamma,
		Lambda: ss.TD.Lambda, Epsilon: ss.TD.Epsilon, Alpha: ss.TD.Alpha}
	id, err := ss.History.BeginRun(ctx, rn)
	if err != nil {
		log.Printf("Sim beginHistory: %v\n", err)
		ss.RunID = 0
		return
	}
	ss.RunID = id
}

// Close closes the run history, if open
func (ss *Sim) Close() error {
	if ss.History == nil {
		return nil
	}
	err := ss.History.Close()
	ss.History = nil
	return err
}

// String returns a one-line summary of the current state
func (ss *Sim) String() string {
	st := &ss.State
	return fmt.Sprintf("Tick: %d\tWinner: %d\tReward: %.4g\tValue: %.4g\tTDError: %.4g\tPos: (%.1f, %.1f)", st.Tick, st.Winner, st.Reward, st.Value, st.TDError, ss.Mouse.Pos.X, ss.Mouse.Pos.Y)
}
