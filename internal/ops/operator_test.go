// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed ins the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package ops

import (
	"encoding/json"
	"io"
	"testing"
	"github.com/mlnoga/deblur/internal/img"
)

func TestSequenceJSONRoundTrip(t *testing.T) {
	seq:=NewOpSequence(NewOpLoad(7, "in.fits"), NewOpSave("out.fits"))
	m,err:=json.Marshal(seq)
	if err!=nil { t.Fatal(err) }

	var decoded OpSequence
	if err:=json.Unmarshal(m, &decoded); err!=nil { t.Fatal(err) }
	if decoded.Type!="seq" || !decoded.Active { t.Errorf("decoded header %s/%v; want seq/true", decoded.Type, decoded.Active) }
	if len(decoded.Steps)!=2 { t.Fatalf("%d steps; want 2", len(decoded.Steps)) }
	if decoded.Steps[0].GetType()!="load" || decoded.Steps[1].GetType()!="save" {
		t.Errorf("step types %s/%s; want load/save", decoded.Steps[0].GetType(), decoded.Steps[1].GetType())
	}
	load:=decoded.Steps[0].(*OpLoad)
	if load.ID!=7 || load.FileName!="in.fits" { t.Errorf("load %d/%s; want 7/in.fits", load.ID, load.FileName) }
}

func TestSequenceUnknownOperator(t *testing.T) {
	var decoded OpSequence
	err:=json.Unmarshal([]byte(`{"type":"seq","active":true,"steps":[{"type":"bogus"}]}`), &decoded)
	if err==nil { t.Errorf("decoding unknown operator type did not fail") }
}

func TestRemoveNils(t *testing.T) {
	a, b:=img.NewImage(1,1,1,1), img.NewImage(1,1,1,1)
	res:=RemoveNils([]*img.Image{nil, a, nil, b, nil})
	if len(res)!=2 || res[0]!=a || res[1]!=b { t.Errorf("got %v; want [a b]", res) }
}

func TestIsPathAllowed(t *testing.T) {
	tcs:=[]struct{ Path string; Want bool }{
		{"out.fits", true},
		{"sub/dir/out.fits", true},
		{"/etc/passwd", false},
		{"../escape.fits", false},
	}
	for _,tc:=range tcs {
		if got:=isPathAllowed(tc.Path); got!=tc.Want { t.Errorf("isPathAllowed(%s)=%v; want %v", tc.Path, got, tc.Want) }
	}
}

func TestOpLoadRejectsInputs(t *testing.T) {
	c:=NewContext(io.Discard)
	dummy:=func() (*img.Image, error) { return nil, nil }
	if _, err:=NewOpLoad(0, "in.fits").MakePromises([]Promise{dummy}, c); err==nil {
		t.Errorf("load operator accepted a non-zero input")
	}
}

func TestOpSaveInactivePassthrough(t *testing.T) {
	c:=NewContext(io.Discard)
	f:=img.NewImage(2,2,1,1)
	res, err:=NewOpSave("").Apply(f, c)
	if err!=nil { t.Fatal(err) }
	if res!=f { t.Errorf("inactive save did not pass the image through") }
}

func TestMaterializeAll(t *testing.T) {
	mk:=func(id int) Promise {
		return func() (*img.Image, error) {
			f:=img.NewImage(1,1,1,1)
			f.ID=id
			return f, nil
		}
	}
	outs, err:=MaterializeAll([]Promise{mk(0), mk(1), mk(2)}, 2, false)
	if err!=nil { t.Fatal(err) }
	if len(outs)!=3 { t.Fatalf("%d outputs; want 3", len(outs)) }
	for i,o:=range outs {
		if o.ID!=i { t.Errorf("output %d has id %d", i, o.ID) }
	}
}
