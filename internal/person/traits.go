package person

// Traits a user may add or remove.
var DisplayableTraits = []string{
	"ALCOHOLIC", "ARROGANT", "CALM", "CHASTE", "CHEERY", "DEMANDING",
	"DISCIPLINED", "HARDWORKING", "HEARTBREAKER", "HOTHEADED", "INDIFFERENT",
	"JUNKIE", "LAZY", "LEADER", "LUDOMANIAC", "MELANCHOLIC", "MISOGYNIST",
	"MODEST", "OPEN_MINDED", "PERFECTIONIST", "RACIST", "SIMPLE",
	"TEAM_PLAYER", "UNDISCIPLINED", "UNWANTED_ACTOR", "XENOPHOBE",
}

// HiddenTraits are engine-internal labels; they are preserved but never
// offered for editing.
var HiddenTraits = []string{
	"IMMORTAL", "IMAGE_SOPHISTIC", "IMAGE_VIVID", "MAIN_CHARACTER",
	"STERILE", "SUPER_IMMORTAL", "UNTOUCHABLE",
}

var traitPairs = [][2]string{
	{"HARDWORKING", "LAZY"},
	{"DISCIPLINED", "UNDISCIPLINED"},
	{"PERFECTIONIST", "INDIFFERENT"},
	{"HOTHEADED", "CALM"},
	{"DEMANDING", "MODEST"},
	{"ARROGANT", "SIMPLE"},
	{"HEARTBREAKER", "CHASTE"},
	{"CHEERY", "MELANCHOLIC"},
}

var (
	traitConflicts = func() map[string]string {
		m := make(map[string]string, len(traitPairs)*2)
		for _, p := range traitPairs {
			m[p[0]] = p[1]
			m[p[1]] = p[0]
		}
		return m
	}()
	displayableSet = toSet(DisplayableTraits)
	hiddenSet      = toSet(HiddenTraits)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ConflictingTrait returns the trait that cannot coexist with trait.
func ConflictingTrait(trait string) (string, bool) {
	other, ok := traitConflicts[trait]
	return other, ok
}

// IsDisplayableTrait reports whether trait may be edited.
func IsDisplayableTrait(trait string) bool {
	_, ok := displayableSet[trait]
	return ok
}

// IsHiddenTrait reports whether trait is engine-internal.
func IsHiddenTrait(trait string) bool {
	_, ok := hiddenSet[trait]
	return ok
}

// VisibleTraits filters out hidden traits, keeping stored order.
func VisibleTraits(traits []string) []string {
	var out []string
	for _, t := range traits {
		if !IsHiddenTrait(t) {
			out = append(out, t)
		}
	}
	return out
}
