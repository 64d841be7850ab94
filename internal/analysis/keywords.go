package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultMaxKeywords is the keyword limit used when callers do not pass one
	DefaultMaxKeywords = 10

	minKeywordLength = 3
)

// defaultStopWords are common ASCII function words that carry no failure signal
var defaultStopWords = []string{
	"the", "and", "but", "for", "nor", "not", "yet", "are", "was", "were", "been", "being",
	"have", "has", "had", "does", "did", "doing", "will", "would", "could", "should", "shall",
	"may", "might", "must", "can", "cannot", "this", "that", "these", "those", "you", "your",
	"yours", "his", "her", "hers", "its", "our", "ours", "their", "theirs", "they", "them",
	"she", "him", "who", "whom", "whose", "which", "what", "when", "where", "why", "how",
	"with", "without", "from", "into", "onto", "upon", "about", "above", "below", "over",
	"under", "after", "before", "during", "between", "through", "than", "then", "there",
	"here", "also", "just", "only", "very", "too", "all", "any", "some", "each", "both",
	"few", "more", "most", "other", "such", "own", "same", "out", "off", "again", "once",
	"while", "because", "until", "against", "is", "be", "do", "it", "an", "a", "of", "to",
	"in", "on", "at", "by", "or", "as", "if", "so", "no", "we", "he", "me", "my", "us",
	"myself", "yourself", "itself", "themselves", "ourselves", "dont", "didnt", "doesnt",
	"wasnt", "werent", "isnt", "arent", "cant", "wont", "couldnt", "shouldnt", "wouldnt",
	"hasnt", "havent", "hadnt", "one", "get", "got", "like", "well",
}

// KeywordCount is a significant token and its frequency in a text
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// normalizeText lower-cases text and strips punctuation and symbol runes.
// Letters outside ASCII are kept untouched.
func normalizeText(text string) string {
	text = cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// words returns every normalized token, including stop-words and short tokens
func words(text string) []string {
	return strings.Fields(normalizeText(text))
}

// Tokenize returns the significant tokens of text in order of appearance
func (a *Analyzer) Tokenize(text string) []string {
	var tokens []string
	for _, w := range words(text) {
		if a.isSignificant(w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func (a *Analyzer) isSignificant(word string) bool {
	if utf8.RuneCountInString(word) < minKeywordLength {
		return false
	}
	return !a.stopWords[word]
}

// KeywordCounts ranks the significant tokens of text by frequency.
// Ties keep the order of first appearance.
func (a *Analyzer) KeywordCounts(text string) []KeywordCount {
	if strings.TrimSpace(text) == "" {
		return []KeywordCount{}
	}

	index := make(map[string]int)
	counts := []KeywordCount{}
	for _, tok := range a.Tokenize(text) {
		if i, ok := index[tok]; ok {
			counts[i].Count++
			continue
		}
		index[tok] = len(counts)
		counts = append(counts, KeywordCount{Word: tok, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// ExtractKeywords returns at most maxKeywords significant tokens, most frequent first
func (a *Analyzer) ExtractKeywords(text string, maxKeywords int) []string {
	result := []string{}
	if maxKeywords <= 0 {
		return result
	}

	for _, kc := range a.KeywordCounts(text) {
		if len(result) == maxKeywords {
			break
		}
		result = append(result, kc.Word)
	}
	return result
}

// IsStopWord reports whether word is ignored by keyword ranking
func (a *Analyzer) IsStopWord(word string) bool {
	return a.stopWords[strings.ToLower(word)]
}
