package extract

import "strings"

const (
	justiceSpace     = "justice "
	justiceNewline   = "justice\n"
	justiceDelivered = "justice, delivered"

	// Produced by citations such as "Mr. Justice, dissenting" cut at the
	// locator's window; never a name.
	falseJustice = "justice dissentin"
)

// AttributePreceding returns the justice named in the sentence that ends at
// index, e.g. "justice black". The name is lowercased. It returns false when
// the sentence names no justice.
func AttributePreceding(text string, index int) (string, bool) {
	if index <= 0 {
		return "", false
	}
	if index > len(text) {
		index = len(text)
	}
	return attributeFolded(foldCase(text[:index]))
}

// attributeFolded runs the attribution patterns over an already folded prefix.
func attributeFolded(prefix string) (string, bool) {
	sentence := prefix
	if p := lastSentenceBreak(prefix, "mr."); p >= 0 {
		sentence = prefix[p:]
	}
	sentence = strings.ReplaceAll(sentence, "mr.", "mr ")

	if i := strings.Index(sentence, justiceSpace); i >= 0 {
		return leadingName(sentence[i:])
	}
	if i := strings.Index(sentence, justiceNewline); i >= 0 {
		return leadingName(sentence[i:])
	}

	// "Smith, Justice, delivered the opinion of the court."
	if i := strings.Index(sentence, justiceDelivered); i >= 0 {
		words := strings.Fields(sentence[:i])
		if len(words) == 0 {
			return "", false
		}
		name := strings.TrimSuffix(words[len(words)-1], ",")
		if name == "" {
			return "", false
		}
		return "justice " + name, true
	}

	return "", false
}

// leadingName joins the first two words of s, dropping commas from the second
func leadingName(s string) (string, bool) {
	words := strings.Fields(s)
	if len(words) > 2 {
		words = words[:2]
	}
	last := len(words) - 1
	words[last] = strings.ReplaceAll(words[last], ",", "")

	name := strings.Join(words, " ")
	if name == falseJustice {
		return "", false
	}
	return name, true
}
