package label

import "strings"

// Rule tags a reading with Section when any trigger occurs in it.
type Rule struct {
	Section  string
	Triggers []string
}

// Matches reports whether any trigger is a substring of reading. The test is
// plain containment, so "Ex" also fires on any longer name containing it.
func (r Rule) Matches(reading string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(reading, t) {
			return true
		}
	}
	return false
}

// Labeler evaluates rules in order; the first match wins.
type Labeler struct {
	rules    []Rule
	fallback string
}

// New returns a Labeler over rules, using fallback when none match.
func New(rules []Rule, fallback string) *Labeler {
	return &Labeler{rules: append([]Rule(nil), rules...), fallback: fallback}
}

// Section returns the category for reading.
func (l *Labeler) Section(reading string) string {
	for _, r := range l.rules {
		if r.Matches(reading) {
			return r.Section
		}
	}
	return l.fallback
}

// Apply prefixes reading with "<SECTION>: ".
func (l *Labeler) Apply(reading string) string {
	return l.Section(reading) + ": " + reading
}

const (
	Law      = "LAW"
	Lion     = "LION"
	History  = "HISTORY"
	Ox       = "OX"
	Wisdom   = "WISDOM"
	Man      = "MAN"
	Prophets = "PROPHETS"
	Eagle    = "EAGLE"
	NewCov   = "NEW COV"
)

// Abbreviated matches the abbreviated book names of canon.Abbreviated.
func Abbreviated() *Labeler {
	return New([]Rule{
		{Law, []string{"Gen", "Ex", "Lev", "Num", "Deu"}},
		{Lion, []string{"Matt"}},
		{History, []string{"Joshua", "Judges", "Ruth", "Sam", "Kings", "Chron", "Ezra", "Nehemiah", "Esther"}},
		{Ox, []string{"Mark"}},
		{Wisdom, []string{"Psalms", "Prov", "Eccles.", "Song", "Job"}},
		{Man, []string{"Luke"}},
		{Prophets, []string{"Isaiah", "Jer", "Lam", "Ezekiel", "Daniel", "Hosea", "Joel", "Amos", "Obd", "Jonah", "Micah", "Nahum", "Hab", "Zeph", "Haggai", "Zech.", "Malachi"}},
		{Eagle, []string{"John"}},
	}, NewCov)
}

// Full is Abbreviated with the triggers that do not occur inside the full
// names (Eccles., Obd, Zech.) replaced by their full forms.
func Full() *Labeler {
	return New([]Rule{
		{Law, []string{"Gen", "Ex", "Lev", "Num", "Deu"}},
		{Lion, []string{"Matt"}},
		{History, []string{"Joshua", "Judges", "Ruth", "Sam", "Kings", "Chron", "Ezra", "Nehemiah", "Esther"}},
		{Ox, []string{"Mark"}},
		{Wisdom, []string{"Psalms", "Prov", "Ecclesiastes", "Song", "Job"}},
		{Man, []string{"Luke"}},
		{Prophets, []string{"Isaiah", "Jer", "Lam", "Ezekiel", "Daniel", "Hosea", "Joel", "Amos", "Obadiah", "Jonah", "Micah", "Nahum", "Hab", "Zeph", "Haggai", "Zechariah", "Malachi"}},
		{Eagle, []string{"John"}},
	}, NewCov)
}
