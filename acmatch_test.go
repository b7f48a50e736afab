package acmatch

import (
	"errors"
	"testing"
)

func TestAddBuildsSharedPrefixes(t *testing.T) {
	ac := New[byte, String]()
	ac.Add("he").Add("she").Add("his").Add("hers")

	// root, h, he, s, sh, she, hi, his, her, hers
	if got := ac.Stats().States; got != 10 {
		t.Errorf("States = %d, want 10", got)
	}
	if got := ac.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if got := ac.Stats().MaxDepth; got != 4 {
		t.Errorf("MaxDepth = %d, want 4", got)
	}

	// Re-adding an existing path reuses its states.
	ac.Add("he")
	if got := ac.Stats().States; got != 10 {
		t.Errorf("States after duplicate = %d, want 10", got)
	}
	if got := ac.Len(); got != 5 {
		t.Errorf("Len() after duplicate = %d, want 5", got)
	}
}

func TestAddEmptyPatternIsIgnored(t *testing.T) {
	ac := New[byte, String]()
	ac.Matcher()
	if !ac.Prepared() {
		t.Fatal("automaton should be prepared after Matcher()")
	}

	ac.Add("")
	if ac.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ac.Len())
	}
	if !ac.Prepared() {
		t.Error("empty pattern should not invalidate preparation")
	}
	if got := ac.Stats().States; got != 1 {
		t.Errorf("States = %d, want 1", got)
	}
	if len(ac.nodes[rootID].outputs) != 0 {
		t.Error("root must never carry outputs")
	}
}

func TestAddInvalidatesPreparation(t *testing.T) {
	ac := New[byte, String]()
	if ac.Prepared() {
		t.Error("new automaton should not be prepared")
	}
	ac.Add("abc")
	ac.Matcher()
	if !ac.Prepared() {
		t.Error("Matcher() should prepare")
	}
	ac.Add("bc")
	if ac.Prepared() {
		t.Error("Add should invalidate preparation")
	}
}

func TestPattern(t *testing.T) {
	ac := New[byte, String]()
	ac.AddAll("alpha", "", "beta")
	if ac.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ac.Len())
	}
	if got := ac.Pattern(0); got != "alpha" {
		t.Errorf("Pattern(0) = %q, want alpha", got)
	}
	if got := ac.Pattern(1); got != "beta" {
		t.Errorf("Pattern(1) = %q, want beta", got)
	}
}

// naiveFail finds a state's failure target by searching, from the longest
// candidate down, for the longest proper suffix of its path that is also a
// root-anchored trie path.
func naiveFail[E comparable, P Sequence[E]](a *Automaton[E, P], s stateID) stateID {
	var path []E
	for n := s; n != rootID; n = a.nodes[n].parent {
		path = append([]E{a.nodes[n].label}, path...)
	}
	for suffix := path[1:]; len(suffix) > 0; suffix = suffix[1:] {
		cur, ok := rootID, true
		for _, e := range suffix {
			if cur, ok = a.nodes[cur].children[e]; !ok {
				break
			}
		}
		if ok {
			return cur
		}
	}
	return rootID
}

func TestFailLinksMatchSuffixSearch(t *testing.T) {
	ac := New[byte, String]()
	ac.AddAll("he", "she", "his", "hers", "abcabd", "bcab", "cabd", "ab", "aaaa", "aa")
	ac.Matcher()

	if ac.nodes[rootID].fail != rootID {
		t.Error("root must fail to itself")
	}
	for i := 1; i < len(ac.nodes); i++ {
		s := stateID(i)
		if got, want := ac.nodes[s].fail, naiveFail(ac, s); got != want {
			t.Errorf("state %d (depth %d): fail = %d, want %d", s, ac.nodes[s].depth, got, want)
		}
	}
}

func TestOutputsOwnThenInherited(t *testing.T) {
	ac := New[byte, String]()
	ac.AddAll("c", "bc", "abc")
	m := ac.Matcher()

	abc := ac.nodes[rootID].children['a']
	abc = ac.nodes[abc].children['b']
	abc = ac.nodes[abc].children['c']
	want := []uint32{2, 1, 0}
	got := ac.nodes[abc].outputs
	if len(got) != len(want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outputs = %v, want %v", got, want)
		}
	}

	// A pattern added to a state that already inherited outputs goes before
	// the inherited ones once re-prepared.
	ac.Add("abc")
	m.FindAll(String("abc"))
	got = ac.nodes[abc].outputs
	want = []uint32{2, 3, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("outputs after re-prepare = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outputs after re-prepare = %v, want %v", got, want)
		}
	}
}

func TestScanUnpreparedPanics(t *testing.T) {
	ac := New[byte, String]()
	ac.Add("abc")

	defer func() {
		if recover() == nil {
			t.Error("scan on an unprepared automaton should panic")
		}
	}()
	ac.scan(String("abc"), 0, 3, func(uint32, int) bool { return false })
}

func TestMatchRangeOutOfBoundsPanics(t *testing.T) {
	m := New[byte, String]().Add("a").Matcher()

	ranges := [][2]int{{-1, 2}, {0, 4}, {3, 2}}
	for _, r := range ranges {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Match(_, %d, %d) should panic", r[0], r[1])
				}
			}()
			m.Match(String("abc"), r[0], r[1], func(String, int) bool { return false })
		}()
	}
}

func TestNewWithConfigRejectsInvalid(t *testing.T) {
	config := DefaultConfig()
	config.RejectMinLen = 0

	_, err := NewWithConfig[byte, String](config)
	if err == nil {
		t.Fatal("expected error for RejectMinLen = 0")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "RejectMinLen" {
		t.Errorf("Field = %q, want RejectMinLen", cfgErr.Field)
	}
}

func TestAccelOnlyForBytes(t *testing.T) {
	b := New[byte, String]().Add("x")
	b.Matcher()
	if b.accel == nil || b.accel.starts == nil {
		t.Error("byte automaton should build a start-byte prefilter")
	}

	r := New[rune, Runes]().Add(Runes("x"))
	r.Matcher()
	if r.accel != nil {
		t.Error("rune automaton should not build byte filters")
	}

	config := DefaultConfig()
	config.EnablePrefilter = false
	config.EnableRejectFilter = false
	off, err := NewWithConfig[byte, String](config)
	if err != nil {
		t.Fatal(err)
	}
	off.Add("x").Matcher()
	if off.accel != nil {
		t.Error("disabled filters should leave accel nil")
	}
}
