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

package img

import (
	"fmt"
	"math"
)

// Basic image statistics: min, mean, max
type Stats struct {
	Min  float32
	Max  float32
	Mean float32
}

// Calculates basic statistics over the given data
func CalcStats(data []float32) *Stats {
	min, max, sum := float32(math.MaxFloat32), float32(-math.MaxFloat32), float64(0)
	for _, d := range data {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		sum += float64(d)
	}
	mean := float32(0)
	if len(data) > 0 {
		mean = float32(sum / float64(len(data)))
	}
	return &Stats{Min: min, Max: max, Mean: mean}
}

// Recalculates and caches statistics for the image
func (i *Image) CalcStats() *Stats {
	i.Stats = CalcStats(i.Data)
	return i.Stats
}

func (s *Stats) String() string {
	return fmt.Sprintf("min %.4g mean %.4g max %.4g", s.Min, s.Mean, s.Max)
}
