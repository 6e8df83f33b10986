package signals

import "strings"

// stopwords are skipped by term extraction. Grouped for maintenance only.
var stopwords = newWordSet(
	// Articles
	"a", "an", "the",

	// Pronouns
	"i", "me", "my", "myself", "you", "your", "yours", "yourself", "he",
	"him", "his", "himself", "she", "her", "hers", "herself", "it", "its",
	"itself", "we", "us", "our", "ours", "ourselves", "they", "them", "their",
	"theirs", "themselves", "this", "that", "these", "those", "what", "which",
	"who", "whom",

	// Be verbs
	"am", "is", "are", "was", "were", "be", "been", "being",

	// Have verbs
	"have", "has", "had", "having",

	// Do verbs
	"do", "does", "did", "doing", "done",

	// Modal verbs
	"will", "would", "shall", "should", "can", "could", "may", "might",
	"must",

	// Common verbs
	"get", "got", "getting", "go", "goes", "going", "went", "gone", "make",
	"made", "making", "take", "took", "taken", "taking", "come", "came",
	"coming", "see", "saw", "seen", "seeing", "know", "knew", "known",
	"knowing", "think", "thought", "thinking", "want", "wanted", "wanting",
	"need", "needed", "needing", "try", "tried", "trying", "use", "used",
	"using", "find", "found", "finding", "give", "gave", "given", "giving",
	"tell", "told", "telling", "say", "said", "saying", "let", "lets",
	"letting", "put", "puts", "putting", "keep", "kept", "keeping", "start",
	"started", "starting", "seem", "seemed", "seeming", "help", "helped",
	"helping", "show", "showed", "shown", "showing", "feel", "felt",
	"feeling", "look", "looked", "looking",

	// Prepositions
	"to", "of", "in", "for", "on", "with", "at", "by", "from", "up", "about",
	"into", "over", "after", "before", "between", "under", "again", "out",
	"off", "down", "through", "during", "without", "around", "among", "along",
	"across",

	// Conjunctions
	"and", "but", "or", "nor", "so", "yet", "both", "either", "neither",
	"not", "only", "also", "just", "than", "then", "when", "where", "why",
	"how", "if", "because", "while", "although", "though", "unless", "until",
	"whether",

	// Determiners and quantifiers
	"all", "each", "every", "any", "some", "no", "none", "few", "many",
	"much", "more", "most", "less", "least", "other", "another", "such",
	"same",

	// Adverbs
	"very", "really", "quite", "too", "always", "never", "often", "sometimes",
	"usually", "already", "still", "even", "now", "here", "there", "today",
	"tomorrow", "yesterday", "well", "back", "way",

	// Other common words
	"yes", "ok", "okay", "like", "thing", "things", "time", "day", "days",
	"week", "weeks", "year", "years", "month", "months", "people", "person",
	"man", "woman", "first", "last", "next", "new", "old", "good", "great",
	"bad", "little", "big", "long", "right", "left", "own", "part", "lot",
	"something", "nothing", "everything", "anything", "someone", "anyone",
	"everyone", "maybe", "probably", "actually", "basically",

	// Single letters and numbers as words
	"s", "t", "m", "d", "ll", "ve", "re",

	// Journal filler
	"feels", "im", "ive", "dont", "didnt", "cant", "couldnt", "wasnt", "isnt",
	"gonna", "wanna", "kinda", "bit", "pretty", "super", "honestly",
	"literally", "morning", "afternoon", "evening", "tonight", "night",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether word is ignored by term extraction
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}
