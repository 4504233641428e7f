package manager

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// MythicBeat is one stage of a hero's-journey outline.
type MythicBeat struct {
	Stage string `json:"stage"`
	Beat  string `json:"beat"`
}

// PodcastLine is one spoken turn in a podcast script.
type PodcastLine struct {
	Host string `json:"host"`
	Line string `json:"line"`
}

// EssaySection is one part of a video-essay script.
type EssaySection struct {
	Heading string `json:"heading"`
	Script  string `json:"script"`
}

var mythicStages = []string{
	"The Ordinary World",
	"The Call to Adventure",
	"Refusal of the Call",
	"Meeting the Mentor",
	"Crossing the Threshold",
	"Tests, Allies and Enemies",
	"The Ordeal",
	"The Reward",
	"The Road Back",
	"Return with the Elixir",
}

var defaultPodcastHosts = []string{"Alex", "Jordan"}

const (
	defaultCondenseRatio = 0.3
	speakingWordsPerMin  = 150
)

// MythicOutline maps the sentences of text onto the hero's-journey stages in
// order. With fewer sentences than stages, sentences are spread across the
// stages and later stages reuse the closest preceding sentence.
func MythicOutline(text string) []MythicBeat {
	sentences := splitSentences(text)
	beats := make([]MythicBeat, len(mythicStages))
	for i, stage := range mythicStages {
		beats[i].Stage = stage
		if len(sentences) == 0 {
			continue
		}
		beats[i].Beat = sentences[i*len(sentences)/len(mythicStages)]
	}
	return beats
}

// Condense keeps the highest-scoring sentences of text, in their original
// order, so that roughly ratio of the sentences remain. Sentences are scored
// by the average corpus frequency of their words.
func Condense(text string, ratio float64) string {
	if ratio <= 0 || ratio > 1 {
		ratio = defaultCondenseRatio
	}
	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return strings.Join(sentences, " ")
	}
	keep := int(math.Ceil(float64(len(sentences)) * ratio))

	freq := make(map[string]int)
	for _, s := range sentences {
		for _, w := range words(s) {
			freq[w]++
		}
	}
	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ws := words(s)
		total := 0
		for _, w := range ws {
			total += freq[w]
		}
		score := 0.0
		if len(ws) > 0 {
			score = float64(total) / float64(len(ws))
		}
		ranked[i] = scored{idx: i, score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	chosen := ranked[:keep]
	sort.Slice(chosen, func(i, j int) bool { return chosen[i].idx < chosen[j].idx })

	out := make([]string, len(chosen))
	for i, c := range chosen {
		out[i] = sentences[c.idx]
	}
	return strings.Join(out, " ")
}

// PodcastScript turns text into an alternating dialogue. hosts is a comma
// separated list of names; "" or "default" uses two stock hosts.
func PodcastScript(text, hosts string) []PodcastLine {
	names := parseHosts(hosts)
	sentences := splitSentences(text)
	lines := make([]PodcastLine, 0, len(sentences)+2)
	lines = append(lines, PodcastLine{Host: names[0], Line: "Welcome back to the show. Today we're digging into something worth talking about."})
	for i, s := range sentences {
		lines = append(lines, PodcastLine{Host: names[(i+1)%len(names)], Line: s})
	}
	lines = append(lines, PodcastLine{Host: names[(len(sentences)+1)%len(names)], Line: "That's all for this episode. Thanks for listening."})
	return lines
}

func parseHosts(hosts string) []string {
	hosts = strings.TrimSpace(hosts)
	if hosts == "" || strings.EqualFold(hosts, "default") {
		return append([]string(nil), defaultPodcastHosts...)
	}
	names := splitList(hosts)
	switch len(names) {
	case 0:
		return append([]string(nil), defaultPodcastHosts...)
	case 1:
		partner := defaultPodcastHosts[1]
		if strings.EqualFold(names[0], partner) {
			partner = defaultPodcastHosts[0]
		}
		return []string{names[0], partner}
	}
	return names
}

// VideoEssay lays text out as hook, context, body and conclusion sections and
// estimates the narration length in seconds.
func VideoEssay(text string) ([]EssaySection, int) {
	sentences := splitSentences(text)
	sections := []EssaySection{
		{Heading: "Hook"},
		{Heading: "Context"},
		{Heading: "Argument"},
		{Heading: "Conclusion"},
	}
	switch n := len(sentences); {
	case n == 0:
	case n == 1:
		sections[0].Script = sentences[0]
	case n == 2:
		sections[0].Script = sentences[0]
		sections[3].Script = sentences[1]
	default:
		sections[0].Script = sentences[0]
		sections[3].Script = sentences[n-1]
		middle := sentences[1 : n-1]
		split := (len(middle) + 1) / 2
		sections[1].Script = strings.Join(middle[:split], " ")
		sections[2].Script = strings.Join(middle[split:], " ")
	}
	seconds := int(math.Ceil(float64(len(strings.Fields(text))) * 60 / speakingWordsPerMin))
	return sections, seconds
}

// splitSentences breaks text at '.', '!' or '?' followed by whitespace or the
// end of input. Empty fragments are dropped.
func splitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var out []string
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func words(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			out = append(out, f)
		}
	}
	return out
}
