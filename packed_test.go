package bitbuf

import (
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func TestPacked(t *testing.T) {
	t.Run("Cell Count", func(t *testing.T) {
		var p Packed

		assert.Equal(t, p.cellCount(64, 5), 5)
		assert.Equal(t, p.cellCount(10, 3), 1)
		assert.Equal(t, p.cellCount(1, 64), 1)
		assert.Equal(t, p.cellCount(13, 5), 2)

		// rounding up must not wrap near the top of the range
		assert.Equal(t, p.cellCount(^uint(0), 1), ^uint(0)/64+1)
		assert.Equal(t, p.cellCount(^uint(0)/3, 3), ^uint(0)/64+1)

		for bits := uint(1); bits <= 64; bits++ {
			for capacity := uint(1); capacity < 200; capacity++ {
				n := p.cellCount(capacity, bits)
				assert.That(t, n*64 >= capacity*bits)
				assert.That(t, (n-1)*64 < capacity*bits)
			}
		}
	})

	t.Run("Cross Boundary", func(t *testing.T) {
		b, err := NewPacked(5, 64)
		assert.NoError(t, err)
		assert.Equal(t, b.RawLen(), 5)

		for i := uint(0); i < 64; i++ {
			assert.NoError(t, b.Set(i, uint64(i%32)))
		}

		var crossed []uint
		for i := uint(0); i < 64; i++ {
			got, ok := b.Get(i)
			assert.That(t, ok)
			assert.Equal(t, got, i%32)

			if b.Location(i).Crosses() {
				crossed = append(crossed, i)
			}
		}
		assert.DeepEqual(t, crossed, []uint{12, 25, 38, 51})
	})

	t.Run("Location", func(t *testing.T) {
		b, err := NewPacked(5, 64)
		assert.NoError(t, err)

		loc := b.Location(12)
		assert.Equal(t, loc, Location{
			Cell:       0,
			Offset:     60,
			OffsetHigh: 1,
			Mask:       0xf << 60,
			MaskHigh:   1,
		})
		assert.Equal(t, loc.String(), "[#0 <<h1l60 &h1l1111"+strings.Repeat("0", 60)+"]")

		loc = b.Location(13)
		assert.Equal(t, loc, Location{Cell: 1, Offset: 1, OffsetHigh: 6, Mask: 31 << 1})
		assert.Equal(t, loc.String(), "[#1 <<1 &111110]")

		// ends exactly on the boundary without crossing
		b, err = NewPacked(16, 8)
		assert.NoError(t, err)
		loc = b.Location(3)
		assert.Equal(t, loc, Location{Cell: 0, Offset: 48, Mask: 0xffff << 48})

		for bits := uint(1); bits <= 64; bits++ {
			b, err := NewPacked(bits, 200)
			assert.NoError(t, err)
			for i := uint(0); i < 200; i++ {
				loc := b.Location(i)
				assert.That(t, b.IsCell(loc.Cell))
				if loc.Crosses() {
					assert.That(t, b.IsCell(loc.Cell+1))
					assert.Equal(t, loc.Offset+bits-64, loc.OffsetHigh)
				}
			}
		}
	})

	t.Run("Full Width", func(t *testing.T) {
		b, err := NewFromSlice[Packed](64, []uint64{^uint64(0), 0, 1 << 63})
		assert.NoError(t, err)
		assert.DeepEqual(t, b.Raw(), []uint64{^uint64(0), 0, 1 << 63})
	})

	t.Run("No Padding", func(t *testing.T) {
		b, err := NewPacked(3, 10)
		assert.NoError(t, err)
		assert.Equal(t, b.ExactBits(), 30)
		assert.Equal(t, b.PaddingBits(), 0)
		assert.Equal(t, b.TotalBits(), 30)
		assert.Equal(t, b.SlackBits(), 34)
	})

	t.Run("Cells", func(t *testing.T) {
		b, err := NewFromSlice[Packed](24, []uint64{0xaaaaaa, 0xbbbbbb, 0xcccccc})
		assert.NoError(t, err)
		assert.DeepEqual(t, b.Raw(), []uint64{0xccccbbbbbbaaaaaa, 0xcc})
	})
}
