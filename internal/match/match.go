// Package match implements exact substring search over byte buffers.
//
// Two strategies are provided: a naive left-to-right scan and a
// Boyer-Moore-Horspool scan extended with a strong good-suffix table.
// Both return identical match positions for identical inputs; the naive
// scanner exists as the reference implementation and as the fast path for
// very short patterns where table construction does not pay off.
//
// A Matcher is immutable after construction and safe for concurrent use.
package match

import (
	"errors"
)

// ErrEmptyPattern is returned by New when the pattern has zero length.
var ErrEmptyPattern = errors.New("match: empty pattern")

// CaseMode selects the normalization applied to every compared byte.
type CaseMode int

const (
	// CaseSensitive compares bytes as-is.
	CaseSensitive CaseMode = iota
	// CaseFold lowercases ASCII letters before comparison.
	CaseFold
)

// naiveThreshold is the pattern length below which the naive scanner is
// used instead of Horspool. Skip distances for tiny patterns are too small
// to amortize the table construction.
const naiveThreshold = 4

// Strategy identifies which search loop a Matcher runs.
type Strategy int

const (
	// StrategyNaive is the O(n*m) reference scan.
	StrategyNaive Strategy = iota
	// StrategyHorspool is the Boyer-Moore-Horspool scan with a strong
	// good-suffix table.
	StrategyHorspool
)

// Matcher holds one pattern and its precomputed shift tables. All fields
// are read-only after construction, so a single Matcher may be shared by
// any number of concurrently scanning goroutines.
type Matcher struct {
	pat      []byte // pattern, already normalized
	mode     CaseMode
	norm     [256]byte
	badChar  [256]int
	goodSuf  []int
	strategy Strategy
}

// New builds a Matcher for pattern under the given case mode, choosing the
// search strategy by pattern length. It fails on an empty pattern.
func New(pattern []byte, mode CaseMode) (*Matcher, error) {
	if len(pattern) >= naiveThreshold {
		return NewHorspool(pattern, mode)
	}
	return NewNaive(pattern, mode)
}

// NewNaive builds a Matcher that always uses the naive scan.
func NewNaive(pattern []byte, mode CaseMode) (*Matcher, error) {
	m, err := newMatcher(pattern, mode)
	if err != nil {
		return nil, err
	}
	m.strategy = StrategyNaive
	return m, nil
}

// NewHorspool builds a Matcher that always uses the Horspool scan.
func NewHorspool(pattern []byte, mode CaseMode) (*Matcher, error) {
	m, err := newMatcher(pattern, mode)
	if err != nil {
		return nil, err
	}
	m.strategy = StrategyHorspool
	m.buildBadChar()
	m.buildGoodSuffix()
	return m, nil
}

func newMatcher(pattern []byte, mode CaseMode) (*Matcher, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}

	m := &Matcher{mode: mode}
	for i := range m.norm {
		b := byte(i)
		if mode == CaseFold && b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		m.norm[i] = b
	}

	// Normalize the pattern once so the search loops compare normalized
	// text bytes against it directly. Table construction below sees the
	// same normalized view, which keeps case-insensitive shifts correct.
	m.pat = make([]byte, len(pattern))
	for i, b := range pattern {
		m.pat[i] = m.norm[b]
	}
	return m, nil
}

// Len returns the pattern length in bytes.
func (m *Matcher) Len() int { return len(m.pat) }

// Mode returns the case mode the Matcher was built with.
func (m *Matcher) Mode() CaseMode { return m.mode }

// Strategy returns the search strategy the Matcher runs.
func (m *Matcher) Strategy() Strategy { return m.strategy }

// Find returns the index of the first occurrence of the pattern in buf,
// or -1 if there is none. Buffers shorter than the pattern never match.
func (m *Matcher) Find(buf []byte) int {
	if len(buf) < len(m.pat) {
		return -1
	}
	if m.strategy == StrategyHorspool {
		return m.findHorspool(buf)
	}
	return m.findNaive(buf)
}

func (m *Matcher) findNaive(buf []byte) int {
	n, pm := len(buf), len(m.pat)
	for i := 0; i+pm <= n; i++ {
		j := 0
		for j < pm && m.norm[buf[i+j]] == m.pat[j] {
			j++
		}
		if j == pm {
			return i
		}
	}
	return -1
}

func (m *Matcher) findHorspool(buf []byte) int {
	n, pm := len(buf), len(m.pat)
	i := 0
	for i <= n-pm {
		j := pm - 1
		for j >= 0 && m.norm[buf[i+j]] == m.pat[j] {
			j--
		}
		if j < 0 {
			return i
		}

		shift := m.badChar[m.norm[buf[i+j]]] - (pm - 1 - j)
		if gs := m.goodSuf[j]; gs > shift {
			shift = gs
		}
		// Floor of 1 guarantees forward progress even when both tables
		// produce a non-positive shift.
		if shift < 1 {
			shift = 1
		}
		i += shift
	}
	return -1
}

// buildBadChar fills the bad-character table: the distance to slide the
// pattern so a mismatched text byte aligns with its rightmost occurrence
// in the pattern (the last pattern byte excluded).
func (m *Matcher) buildBadChar() {
	pm := len(m.pat)
	for i := range m.badChar {
		m.badChar[i] = pm
	}
	for i := 0; i < pm-1; i++ {
		m.badChar[m.pat[i]] = pm - 1 - i
	}
}

// buildGoodSuffix derives the strong good-suffix shifts from the classic
// suffix-length preprocessing: suff[i] is the length of the longest suffix
// of the pattern ending at i that is also a suffix of the whole pattern.
func (m *Matcher) buildGoodSuffix() {
	pm := len(m.pat)
	suff := m.suffixLengths()

	m.goodSuf = make([]int, pm)
	for i := range m.goodSuf {
		m.goodSuf[i] = pm
	}

	// Case: a prefix of the pattern matches the tail of the matched suffix.
	j := 0
	for i := pm - 1; i >= 0; i-- {
		if suff[i] == i+1 {
			for ; j < pm-1-i; j++ {
				if m.goodSuf[j] == pm {
					m.goodSuf[j] = pm - 1 - i
				}
			}
		}
	}
	// Case: the matched suffix reoccurs fully elsewhere in the pattern.
	for i := 0; i <= pm-2; i++ {
		m.goodSuf[pm-1-suff[i]] = pm - 1 - i
	}
}

func (m *Matcher) suffixLengths() []int {
	pm := len(m.pat)
	suff := make([]int, pm)
	suff[pm-1] = pm

	g := pm - 1
	f := 0
	for i := pm - 2; i >= 0; i-- {
		if i > g && suff[i+pm-1-f] < i-g {
			suff[i] = suff[i+pm-1-f]
			continue
		}
		if i < g {
			g = i
		}
		f = i
		for g >= 0 && m.pat[g] == m.pat[g+pm-1-f] {
			g--
		}
		suff[i] = f - g
	}
	return suff
}
