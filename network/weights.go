// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/emergent/weights"
	"github.com/goki/ki/indent"
)

// SaveWtsJSON saves network weights to a JSON-formatted file.
// If filename has .gz extension, then file is gzip compressed.
func (nt *Network) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr := gzip.NewWriter(fp)
		defer gzr.Close()
		err = nt.WriteWtsJSON(gzr)
	} else {
		err = nt.WriteWtsJSON(fp)
	}
	if err == nil {
		nt.WtsFile = filename
	}
	return err
}

// OpenWtsJSON opens network weights from a JSON-formatted file.
// If filename has .gz extension, then file is gzip uncompressed.
func (nt *Network) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr, gerr := gzip.NewReader(fp)
		if gerr != nil {
			log.Println(gerr)
			return gerr
		}
		defer gzr.Close()
		err = nt.ReadWtsJSON(gzr)
	} else {
		err = nt.ReadWtsJSON(fp)
	}
	if err == nil {
		nt.WtsFile = filename
	}
	return err
}

// errWriter records the first write error so the JSON writers can
// stay a flat list of writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, err
}

// WriteWtsJSON writes the weights from this network from the receiver-side perspective
// in a JSON text format.  We build in the indentation logic to make it much faster and
// more efficient.
func (nt *Network) WriteWtsJSON(wr io.Writer) error {
	w := &errWriter{w: wr}
	depth := 0
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Network\": %q,\n", nt.Nm))) // note: can't use \n in `` so need "
	if len(nt.MetaData) > 0 {
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"MetaData\": {\n"))
		depth++
		keys := sortedKeys(nt.MetaData)
		for ki, k := range keys {
			w.Write(indent.TabBytes(depth))
			w.Write([]byte(fmt.Sprintf("%q: %q", k, nt.MetaData[k])))
			if ki == len(keys)-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("},\n"))
	}
	w.Write(indent.TabBytes(depth))
	ongs := make([]*Group, 0, nt.NGroups())
	for _, gp := range nt.AllGroups() {
		if !gp.Off {
			ongs = append(ongs, gp)
		}
	}
	ng := len(ongs)
	if ng == 0 {
		w.Write([]byte("\"Layers\": null\n"))
	} else {
		w.Write([]byte("\"Layers\": [\n"))
		depth++
		for gi, gp := range ongs {
			gp.WriteWtsJSON(w, depth)
			if gi == ng-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}\n"))
	return w.err
}

// ReadWtsJSON reads network weights from the receiver-side perspective
// in a JSON text format.  Reads entire file into a temporary weights.Weights
// structure that is then passed to Groups etc using SetWts method.
func (nt *Network) ReadWtsJSON(r io.Reader) error {
	nw, err := weights.NetReadJSON(r)
	if err != nil {
		return err // note: already logged
	}
	err = nt.SetWts(nw)
	if err != nil {
		log.Println(err)
	}
	return err
}

// SetWts sets the weights for this network from weights.Network decoded values
func (nt *Network) SetWts(nw *weights.Network) error {
	var err error
	if nw.Network != "" {
		nt.Nm = nw.Network
	}
	if nw.MetaData != nil {
		if nt.MetaData == nil {
			nt.MetaData = nw.MetaData
		} else {
			for mk, mv := range nw.MetaData {
				nt.MetaData[mk] = mv
			}
		}
	}
	for li := range nw.Layers {
		lw := &nw.Layers[li]
		gp, er := nt.GroupByNameTry(lw.Layer)
		if er != nil {
			err = er
			continue
		}
		if er := gp.SetWts(lw); er != nil {
			err = er
		}
	}
	return err
}

// WriteWtsJSON writes the weights of the receiving projections of this
// group in a JSON text format.
func (gp *Group) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Layer\": %q,\n", gp.Nm)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"MetaData\": {\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"RuleType\": %q\n", gp.RuleType.String())))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	onps := make([]*Prjn, 0, len(gp.RcvPrjns))
	for _, pj := range gp.RcvPrjns {
		if !pj.Off {
			onps = append(onps, pj)
		}
	}
	np := len(onps)
	if np == 0 {
		w.Write([]byte("\"Prjns\": null\n"))
	} else {
		w.Write([]byte("\"Prjns\": [\n"))
		depth++
		for pi, pj := range onps {
			pj.WriteWtsJSON(w, depth) // this leaves prjn unterminated
			if pi == np-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}")) // note: leave unterminated as outer loop needs to add , or just \n depending
}

// SetWts sets the weights for this group from weights.Layer decoded values.
// Projections are matched by the name of their sending group.
func (gp *Group) SetWts(lw *weights.Layer) error {
	if gp.Off {
		return nil
	}
	if lw.MetaData != nil {
		if rt, ok := lw.MetaData["RuleType"]; ok {
			if err := gp.RuleType.FromString(rt); err != nil {
				return fmt.Errorf("Group %s SetWts: %w", gp.Nm, err)
			}
		}
	}
	var err error
	for pi := range lw.Prjns {
		pw := &lw.Prjns[pi]
		var pj *Prjn
		for _, p := range gp.RcvPrjns {
			if p.Send.Nm == pw.From {
				pj = p
				break
			}
		}
		if pj == nil {
			err = fmt.Errorf("Group %s SetWts: no receiving projection from: %s", gp.Nm, pw.From)
			continue
		}
		if er := pj.SetWts(pw); er != nil {
			err = er
		}
	}
	return err
}
