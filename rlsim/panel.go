// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rlsim

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goki/kigen/ordmap"
)

// The control panel field names
const (
	FieldTrials  = "Trials"
	FieldGamma   = "Discount (gamma)"
	FieldLambda  = "Lambda"
	FieldEpsilon = "Epsilon"
	FieldAlpha   = "Learning rt."
)

// Snapshot is the parsed contents of the control panel, read at the start
// of each batch of trials
type Snapshot struct {
	NTrials int
	Gamma   float32
	Lambda  float32
	Epsilon float32
	Alpha   float32
}

// ControlPanel holds editable text fields for the run parameters.
// It can be written from any goroutine.
type ControlPanel struct {
	mu     sync.Mutex
	fields *ordmap.Map[string, string]
}

// NewControlPanel returns a panel with fields set from the config
func NewControlPanel(cfg *Config) *ControlPanel {
	cp := &ControlPanel{fields: ordmap.New[string, string]()}
	cp.fields.Add(FieldTrials, strconv.Itoa(cfg.NTrials))
	cp.fields.Add(FieldGamma, fmtFloat(cfg.Gamma))
	cp.fields.Add(FieldLambda, fmtFloat(cfg.Lambda))
	cp.fields.Add(FieldEpsilon, fmtFloat(cfg.Epsilon))
	cp.fields.Add(FieldAlpha, fmtFloat(cfg.Alpha))
	return cp
}

func fmtFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Fields returns the field names in display order
func (cp *ControlPanel) Fields() []string {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	nms := make([]string, cp.fields.Len())
	for i := range nms {
		nms[i] = cp.fields.KeyByIdx(i)
	}
	return nms
}

// Text returns the current text of the field
func (cp *ControlPanel) Text(field string) (string, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	txt, ok := cp.fields.ValByKey(field)
	if !ok {
		return "", fmt.Errorf("ControlPanel: no field named %q", field)
	}
	return txt, nil
}

// SetText sets the text of the field.  It is not parsed until the next Snapshot.
func (cp *ControlPanel) SetText(field, txt string) error {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	if _, ok := cp.fields.ValByKey(field); !ok {
		return fmt.Errorf("ControlPanel: no field named %q", field)
	}
	cp.fields.Add(field, txt)
	return nil
}

// String returns the fields as "name: text" lines
func (cp *ControlPanel) String() string {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	var b strings.Builder
	for i := 0; i < cp.fields.Len(); i++ {
		fmt.Fprintf(&b, "%s: %s\n", cp.fields.KeyByIdx(i), cp.fields.ValByIdx(i))
	}
	return b.String()
}

// Snapshot parses all fields.  An error names the first field that is
// not a valid number or is out of range.
func (cp *ControlPanel) Snapshot() (Snapshot, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	var sn Snapshot
	txt, _ := cp.fields.ValByKey(FieldTrials)
	n, err := strconv.Atoi(strings.TrimSpace(txt))
	if err != nil {
		return sn, fmt.Errorf("ControlPanel: field %q: invalid integer %q", FieldTrials, txt)
	}
	if n < 0 {
		return sn, fmt.Errorf("ControlPanel: field %q: must not be negative: %d", FieldTrials, n)
	}
	sn.NTrials = n
	floats := []struct {
		field    string
		val      *float32
		min, max float32
	}{
		{FieldGamma, &sn.Gamma, 0, 1},
		{FieldLambda, &sn.Lambda, 0, 1},
		{FieldEpsilon, &sn.Epsilon, 0, 1},
		{FieldAlpha, &sn.Alpha, 0, -1},
	}
	for _, fl := range floats {
		txt, _ := cp.fields.ValByKey(fl.field)
		v, err := strconv.ParseFloat(strings.TrimSpace(txt), 32)
		if err != nil {
			return sn, fmt.Errorf("ControlPanel: field %q: invalid number %q", fl.field, txt)
		}
		f := float32(v)
		if f < fl.min || (fl.max >= 0 && f > fl.max) {
			return sn, fmt.Errorf("ControlPanel: field %q: %v out of range", fl.field, f)
		}
		*fl.val = f
	}
	return sn, nil
}

// setTrials shows the number of trials remaining
func (cp *ControlPanel) setTrials(n int) {
	cp.mu.Lock()
	cp.fields.Add(FieldTrials, strconv.Itoa(n))
	cp.mu.Unlock()
}
