// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/goki/ki/ints"
	"github.com/goki/ki/kit"
)

// Conn is one sending -> receiving unit connection made by a Pattern
type Conn struct {
	Si int
	Ri int
}

// Pattern defines a pattern of connectivity between two groups.
// same is true if the sending and receiving groups are the same,
// in which case self connections (Si == Ri) are meaningful.
type Pattern interface {
	// Name returns the name of the pattern -- i.e., the "type" name of the actual pattern generator
	Name() string

	// Connect returns the connections for given numbers of sending and receiving units.
	// Each Si, Ri pair occurs at most once.
	Connect(nSend, nRecv int, same bool) []Conn
}

// RandPattern is a Pattern that uses randomness, and can be given a
// private random source for reproducible connectivity
type RandPattern interface {
	Pattern
	SetRand(rnd erand.Rand)
}

// permute returns a random permutation of 0..n-1 using rnd, or the
// global source if nil
func permute(n int, rnd erand.Rand) []int {
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	erand.PermuteInts(ord, randOpt(rnd)...)
	return ord
}

//////////////////////////////////////////////////////////////////////////////////////
//  Full

// Full implements full all-to-all pattern of connectivity between two groups
type Full struct {
	SelfCon bool `desc:"if true, and connecting group to itself (self projection), then make a self-connection from unit to itself"`
}

func NewFull() *Full {
	return &Full{}
}

func (fp *Full) Name() string {
	return "Full"
}

func (fp *Full) Connect(nSend, nRecv int, same bool) []Conn {
	cons := make([]Conn, 0, nSend*nRecv)
	for ri := 0; ri < nRecv; ri++ {
		for si := 0; si < nSend; si++ {
			if same && !fp.SelfCon && si == ri {
				continue
			}
			cons = append(cons, Conn{Si: si, Ri: ri})
		}
	}
	return cons
}

//////////////////////////////////////////////////////////////////////////////////////
//  OneToOne

// OneToOne connects unit i in the sending group to unit i in the receiving group,
// for the number of units in the smaller of the two
type OneToOne struct {
}

func NewOneToOne() *OneToOne {
	return &OneToOne{}
}

func (ot *OneToOne) Name() string {
	return "OneToOne"
}

func (ot *OneToOne) Connect(nSend, nRecv int, same bool) []Conn {
	n := ints.MinInt(nSend, nRecv)
	cons := make([]Conn, n)
	for i := 0; i < n; i++ {
		cons[i] = Conn{Si: i, Ri: i}
	}
	return cons
}

//////////////////////////////////////////////////////////////////////////////////////
//  Sparse

// Sparse connects a random subset of all possible connections.
// The number of connections is Density times the number of possible
// connections (excluding self connections unless SelfCon), rounded.
// With EqualizeEfferents, senders and receivers are drawn in shuffled
// rounds so that every sending unit gets nearly the same number of
// connections.
type Sparse struct {
	Density           float32 `def:"0.8" min:"0" max:"1" desc:"proportion of possible connections to make"`
	EqualizeEfferents bool    `desc:"give each sending unit (nearly) the same number of connections"`
	SelfCon           bool    `desc:"allow connections from a unit to itself when connecting a group to itself"`

	rnd erand.Rand
}

func NewSparse(density float32) *Sparse {
	return &Sparse{Density: density}
}

func (sp *Sparse) Name() string {
	return "Sparse"
}

func (sp *Sparse) SetRand(rnd erand.Rand) {
	sp.rnd = rnd
}

// NConns returns the number of connections that Connect will try to make
func (sp *Sparse) NConns(nSend, nRecv int, same bool) int {
	poss := nSend * nRecv
	if same && !sp.SelfCon {
		poss -= ints.MinInt(nSend, nRecv)
	}
	return int(math32.Round(sp.Density * float32(poss)))
}

func (sp *Sparse) Connect(nSend, nRecv int, same bool) []Conn {
	if nSend == 0 || nRecv == 0 {
		return nil
	}
	if sp.EqualizeEfferents {
		return sp.connectEqualized(nSend, nRecv, same)
	}
	poss := Full{SelfCon: sp.SelfCon}
	all := poss.Connect(nSend, nRecv, same)
	n := ints.MinInt(sp.NConns(nSend, nRecv, same), len(all))
	ord := permute(len(all), sp.rnd)
	cons := make([]Conn, n)
	for i := 0; i < n; i++ {
		cons[i] = all[ord[i]]
	}
	return cons
}

// connectEqualized draws senders and receivers from shuffled rounds
// (restarting the shuffle when one is used up) and pairs them up.
// Self and duplicate pairs are skipped, so the result can be slightly
// smaller than NConns.
func (sp *Sparse) connectEqualized(nSend, nRecv int, same bool) []Conn {
	nc := int(math32.Round(sp.Density * float32(nSend*nRecv)))
	draw := func(n int) []int {
		out := make([]int, 0, nc)
		for len(out) < nc {
			out = append(out, permute(n, sp.rnd)...)
		}
		return out[:nc]
	}
	sis := draw(nSend)
	ris := draw(nRecv)
	has := make(map[Conn]bool, nc)
	cons := make([]Conn, 0, nc)
	for i := 0; i < nc; i++ {
		cn := Conn{Si: sis[i], Ri: ris[i]}
		if same && !sp.SelfCon && cn.Si == cn.Ri {
			continue
		}
		if has[cn] {
			continue
		}
		has[cn] = true
		cons = append(cons, cn)
	}
	return cons
}

//////////////////////////////////////////////////////////////////////////////////////
//  FixedDegree

// DegreeDirs are the directions for FixedDegree connectivity
type DegreeDirs int32

//go:generate stringer -type=DegreeDirs

var KiT_DegreeDirs = kit.Enums.AddEnum(DegreeDirsN, kit.NotBitFlag, nil)

func (ev DegreeDirs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *DegreeDirs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// In gives each receiving unit Degree connections from random senders
	In DegreeDirs = iota

	// Out gives each sending unit Degree connections to random receivers
	Out

	DegreeDirsN
)

// FixedDegree connects each unit to a fixed number of random partners:
// each receiver gets Degree senders (In) or each sender gets Degree
// receivers (Out).  Fewer are made when there are not enough partners.
type FixedDegree struct {
	Degree  int        `def:"2" min:"0" desc:"number of connections per unit"`
	Dir     DegreeDirs `desc:"In: connections sent in to each receiving unit, Out: connections radiating out from each sending unit"`
	SelfCon bool       `desc:"allow connections from a unit to itself when connecting a group to itself"`

	rnd erand.Rand
}

func NewFixedDegree(degree int, dir DegreeDirs) *FixedDegree {
	return &FixedDegree{Degree: degree, Dir: dir}
}

func (fd *FixedDegree) Name() string {
	return "FixedDegree"
}

func (fd *FixedDegree) SetRand(rnd erand.Rand) {
	fd.rnd = rnd
}

func (fd *FixedDegree) Connect(nSend, nRecv int, same bool) []Conn {
	nUnit, nPool := nRecv, nSend
	if fd.Dir == Out {
		nUnit, nPool = nSend, nRecv
	}
	var cons []Conn
	for ui := 0; ui < nUnit; ui++ {
		ord := permute(nPool, fd.rnd)
		nc := 0
		for _, pi := range ord {
			if nc >= fd.Degree {
				break
			}
			if same && !fd.SelfCon && pi == ui {
				continue
			}
			if fd.Dir == Out {
				cons = append(cons, Conn{Si: ui, Ri: pi})
			} else {
				cons = append(cons, Conn{Si: pi, Ri: ui})
			}
			nc++
		}
	}
	return cons
}

//////////////////////////////////////////////////////////////////////////////////////
//  Explicit

// Explicit makes no connections of its own: synapses are added one at a
// time with Prjn.AddSyn or Network.ConnectUnits.
type Explicit struct {
}

func (ex *Explicit) Name() string {
	return "Explicit"
}

func (ex *Explicit) Connect(nSend, nRecv int, same bool) []Conn {
	return nil
}
