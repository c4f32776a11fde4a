package extract

import "strings"

// Keyphrases that introduce an opinion
const (
	KeyMajority           = "delivered the opinion of the court."
	KeyMajorityJoin       = "join."
	KeyConcurring         = "concurring."
	KeyConcurringJudgment = "concurring in the judgment."
	KeyDissenting         = "dissenting."
	KeyPerCuriam          = "per curiam."
)

// Locate finds the first occurrence of keyphrase at or after start that is
// preceded by a justice's name in the same sentence, and returns the offset
// just past it. Matching ignores case. Occurrences with no attributable
// justice are citations and are skipped. When keyphrase never validates,
// each fallback is tried in turn from start.
func Locate(haystack string, start int, keyphrase string, fallback ...string) (int, bool) {
	if start < 0 {
		start = 0
	}
	if start > len(haystack) {
		return 0, false
	}

	window := foldCase(haystack[start:])
	if end, ok := locateFolded(window, foldCase(keyphrase)); ok {
		return start + end, true
	}

	if len(fallback) > 0 {
		return Locate(haystack, start, fallback[0], fallback[1:]...)
	}
	return 0, false
}

func locateFolded(window, keyphrase string) (int, bool) {
	if keyphrase == "" {
		return 0, false
	}

	for from := 0; from <= len(window); {
		i := strings.Index(window[from:], keyphrase)
		if i < 0 {
			return 0, false
		}
		end := from + i + len(keyphrase)

		// Cut the window before the keyphrase's last two characters so its
		// own trailing period cannot end the sentence.
		cut := end - 2
		if cut < 0 {
			cut = 0
		}
		if _, ok := attributeFolded(window[:cut]); ok {
			return end, true
		}
		from = end
	}

	return 0, false
}
