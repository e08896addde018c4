package main

import (
	"io"
	"log"
	"math"

	"github.com/dustin/go-humanize"
)

// progressStep is the minimum percentage advance between two reports.
const progressStep = 1.0

// ProgressFunc observes how much of the input has been consumed.
type ProgressFunc func(percent float64, read, total int64)

// progressPercent returns read/total as a percentage rounded to two
// decimals. A zero-length input counts as fully processed.
func progressPercent(read, total int64) float64 {
	if total <= 0 {
		return 100
	}
	pct := float64(read) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*100) / 100
}

// progressReader reports input consumption to fn as the tokenizer reads.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  float64
	fn    ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) *progressReader {
	p := &progressReader{r: r, total: total, last: -progressStep, fn: fn}
	if total > 0 {
		p.report()
	}
	return p
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if n > 0 {
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.fn == nil {
		return
	}
	pct := progressPercent(p.read, p.total)
	if pct-p.last < progressStep && pct < 100 {
		return
	}
	if pct == 100 && p.last == 100 {
		return
	}
	p.last = pct
	p.fn(pct, p.read, p.total)
}

// finish reports completion once the whole input has been consumed.
func (p *progressReader) finish() {
	if p.fn == nil || p.last == 100 {
		return
	}
	p.last = 100
	p.fn(100, p.read, p.total)
}

func logProgress(percent float64, read, total int64) {
	log.Printf("  processed %.2f%% (%s / %s)", percent, humanize.Bytes(uint64(read)), humanize.Bytes(uint64(total)))
}
