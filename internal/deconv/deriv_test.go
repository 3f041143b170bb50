// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package deconv

import (
	"testing"

	"github.com/mlnoga/deblur/internal/spectral"
)

func TestDerivBankCaches(t *testing.T) {
	tr, err := spectral.NewTransformer(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	bank := NewDerivBank(tr, 8, 8)
	if len(bank.Filters) != 6 {
		t.Fatalf("%d filters; want 6", len(bank.Filters))
	}
	for fi, flt := range bank.Filters {
		re, im := flt.F.Plane(0, 0), flt.F.Plane(0, 1)
		cre, cim := flt.Conj.Plane(0, 0), flt.Conj.Plane(0, 1)
		mre, mim := flt.Mag2.Plane(0, 0), flt.Mag2.Plane(0, 1)
		for i := range re {
			if cre[i] != re[i] || cim[i] != -im[i] {
				t.Fatalf("filter %d bin %d: cached conjugate (%f,%f); want (%f,%f)", fi, i, cre[i], cim[i], re[i], -im[i])
			}
			if want := re[i]*re[i] + im[i]*im[i]; mre[i] != want || mim[i] != 0 {
				t.Fatalf("filter %d bin %d: cached magnitude (%f,%f); want (%f,0)", fi, i, mre[i], mim[i], want)
			}
		}
	}
}

// Multiplying by the cached conjugate must match multiplying by the
// conjugate of the filter itself, as the iterative solver relies on
func TestDerivBankConjMultiply(t *testing.T) {
	tr, err := spectral.NewTransformer(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	bank := NewDerivBank(tr, 8, 8)
	operand := spectral.NewComplex(8, 8)
	for i := range operand.Data {
		operand.Data[i] = float32(i%7) - 3
	}
	for fi, flt := range bank.Filters {
		viaCache, viaFilter := operand.Copy(), operand.Copy()
		spectral.Mul(viaCache, flt.Conj)
		spectral.MulConj(viaFilter, flt.F)
		for i := range viaCache.Data {
			if viaCache.Data[i] != viaFilter.Data[i] {
				t.Fatalf("filter %d element %d: %f via cache; want %f", fi, i, viaCache.Data[i], viaFilter.Data[i])
			}
		}
	}
}
