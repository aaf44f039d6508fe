package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/zeebo/bitbuf"
	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"
)

var (
	bits     = flag.Uint("bits", 0, "bits per element. 0 checks every width from 1 to 64")
	capacity = flag.Uint("capacity", 10000, "number of elements")
	rounds   = flag.Int("rounds", 10, "number of random rewrite rounds per width")
	layout   = flag.String("layout", "both", "layout to check: aligned, packed or both")
	mapped   = flag.Bool("mmap", false, "back the buffers with anonymous memory mappings")
	addr     = flag.String("http", "", "address to serve mon stats on. empty disables")
	seed     = flag.Uint64("seed", 0, "random seed")

	rng pcg.T
)

func stats() {
	defer fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n",
			name, state.Total(), time.Duration(sum), time.Duration(avg))
		return true
	})
}

func main() {
	flag.Parse()

	if *addr != "" {
		go http.ListenAndServe(*addr, monhandler.Handler{})
	}

	err := run()
	stats()
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run() error {
	rng = pcg.New(*seed)

	widths := []uint{*bits}
	if *bits == 0 {
		widths = widths[:0]
		for b := uint(1); b <= 64; b++ {
			widths = append(widths, b)
		}
	}

	for _, w := range widths {
		if err := check(w); err != nil {
			return errs.Wrap(err)
		}
	}

	return nil
}

func check(w uint) error {
	exp := make([]uint64, *capacity)
	mask := uint64(1)<<w - 1
	if w == 64 {
		mask = ^uint64(0)
	}

	var aligned *bitbuf.AlignedBuffer
	var packed *bitbuf.PackedBuffer

	if *layout == "aligned" || *layout == "both" {
		b, err := newBuffer[bitbuf.Aligned](w, *capacity)
		if err != nil {
			return errs.Wrap(err)
		}
		defer b.Close()
		aligned = b
	}
	if *layout == "packed" || *layout == "both" {
		b, err := newBuffer[bitbuf.Packed](w, *capacity)
		if err != nil {
			return errs.Wrap(err)
		}
		defer b.Close()
		packed = b
	}
	if aligned == nil && packed == nil {
		return errs.New("unknown layout: %q", *layout)
	}

	for r := 0; r < *rounds; r++ {
		for i := range exp {
			exp[i] = rng.Uint64() & mask
		}
		if aligned != nil {
			if err := audit(aligned, exp); err != nil {
				return errs.Wrap(err)
			}
		}
		if packed != nil {
			if err := audit(packed, exp); err != nil {
				return errs.Wrap(err)
			}
		}
	}

	if aligned != nil && packed != nil {
		if _, err := aligned.Load(exp); err != nil {
			return errs.Wrap(err)
		}
		if _, err := packed.Load(exp); err != nil {
			return errs.Wrap(err)
		}
		for i := uint(0); i < *capacity; i++ {
			av, _ := aligned.Get(i)
			pv, _ := packed.Get(i)
			if av != pv {
				return errs.New("u%d: layouts disagree at %d: aligned=%d packed=%d", w, i, av, pv)
			}
		}
	}

	if aligned != nil {
		report("aligned", aligned)
	}
	if packed != nil {
		report("packed", packed)
	}

	return nil
}

func newBuffer[L bitbuf.Layout](bits, capacity uint) (*bitbuf.Buffer[L], error) {
	if *mapped {
		return bitbuf.NewMapped[L](bits, capacity)
	}
	return bitbuf.New[L](bits, capacity)
}

// audit clears the buffer, loads the expected values, rewrites a random
// sample of them, and checks that every element and the bit accounting agree.
func audit[L bitbuf.Layout](b *bitbuf.Buffer[L], exp []uint64) error {
	if err := b.Fill(0); err != nil {
		return errs.Wrap(err)
	}
	for it := b.Iter(); it.Next(); {
		if it.Value() != 0 {
			return errs.New("u%d: %d not cleared", b.Bits(), it.Index())
		}
	}

	if _, err := b.Load(exp); err != nil {
		return errs.Wrap(err)
	}

	for n := 0; n < len(exp)/4; n++ {
		i := intn(len(exp))
		v := rng.Uint64() & b.Mask()
		if err := b.Set(uint(i), v); err != nil {
			return errs.Wrap(err)
		}
		exp[i] = v
	}

	for it := b.Iter(); it.Next(); {
		if got := it.Value(); got != exp[it.Index()] {
			return errs.New("u%d: mismatch at %d %v: got 0x%x expected 0x%x",
				b.Bits(), it.Index(), b.Location(it.Index()), got, exp[it.Index()])
		}
	}

	if b.ExactBits()+b.PaddingBits() != b.TotalBits() {
		return errs.New("u%d: exact %d + padding %d != total %d",
			b.Bits(), b.ExactBits(), b.PaddingBits(), b.TotalBits())
	}

	return nil
}

func report[L bitbuf.Layout](name string, b *bitbuf.Buffer[L]) {
	fmt.Printf("u%-2d %-7s cells: %-6d exact: %-8d padding: %-8d slack: %d\n",
		b.Bits(), name, b.RawLen(), b.ExactBits(), b.PaddingBits(), b.SlackBits())
}

func intn(n int) int { return int(rng.Uint32n(uint32(n))) }
