package navlang

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadGrammar reads a morpheme table from path. The file format is
// line-oriented: "!" starts a comment, "version:<v>" sets the table
// version, rule lines are
//
//	surface|attachment|feature|applies|cond[|lenite]
//
// e.g. "ti|suffix|case:patientive|n,pn|voweldiph|" and suppletive forms are
//
//	irreg:<form>|<root>|<suffix surface>
//
// referencing a suffix rule declared anywhere in the file. A corrupt or
// missing table is fatal: no analysis can proceed without it.
func LoadGrammar(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrGrammar, path, err)
	}
	defer f.Close()

	g := &Grammar{irregulars: make(map[string]irregularForm)}
	var pendingIrregs [][]string

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if v, ok := strings.CutPrefix(line, "version:"); ok {
			g.Version = strings.TrimSpace(v)
			continue
		}
		parts := strings.Split(line, "|")
		if form, ok := strings.CutPrefix(parts[0], "irreg:"); ok {
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: %s:%d: irregular needs form|root|suffix", ErrGrammar, path, lineNo)
			}
			// Irregulars may reference rules declared later; resolve after.
			pendingIrregs = append(pendingIrregs, []string{form, parts[1], parts[2]})
			continue
		}
		if len(parts) < 5 {
			return nil, fmt.Errorf("%w: %s:%d: want at least 5 fields, got %d", ErrGrammar, path, lineNo, len(parts))
		}
		r, err := parseRule(parts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrGrammar, path, lineNo, err)
		}
		g.addRule(r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrGrammar, path, err)
	}

	for _, ir := range pendingIrregs {
		rule := g.findRule(AttachSuffix, ir[2])
		if rule == nil {
			return nil, fmt.Errorf("%w: irregular %q references unknown suffix %q", ErrGrammar, ir[0], ir[2])
		}
		g.addIrregular(ir[0], ir[1], rule)
	}

	if len(g.Rules()) == 0 {
		return nil, fmt.Errorf("%w: %s contains no rules", ErrGrammar, path)
	}
	return g, nil
}

func parseRule(parts []string) (*MorphemeRule, error) {
	surface := strings.TrimSpace(parts[0])
	if surface == "" {
		return nil, fmt.Errorf("empty surface")
	}

	var attachment Attachment
	switch parts[1] {
	case "prefix":
		attachment = AttachPrefix
	case "infix1":
		attachment = AttachInfix1
	case "infix2":
		attachment = AttachInfix2
	case "suffix":
		attachment = AttachSuffix
	default:
		return nil, fmt.Errorf("unknown attachment %q", parts[1])
	}

	feat, gloss, err := parseFeature(parts[2])
	if err != nil {
		return nil, err
	}

	var applies POSSet
	for _, code := range strings.Split(parts[3], ",") {
		p := parsePOS(strings.TrimSpace(code))
		if p == POSUnknown {
			return nil, fmt.Errorf("unknown part of speech %q", code)
		}
		applies |= 1 << p
	}

	cond, err := parseCond(parts[4])
	if err != nil {
		return nil, err
	}

	lenites := len(parts) > 5 && strings.TrimSpace(parts[5]) == "lenite"

	return &MorphemeRule{
		Surface:    surface,
		Gloss:      gloss,
		Attachment: attachment,
		AppliesTo:  applies,
		Feature:    feat,
		Cond:       cond,
		Lenites:    lenites,
	}, nil
}

// parseFeature parses "class:value" feature specifications.
func parseFeature(s string) (Feature, string, error) {
	class, value, ok := strings.Cut(s, ":")
	if !ok {
		return Feature{}, "", fmt.Errorf("feature %q is not class:value", s)
	}
	switch class {
	case "case":
		for _, c := range AllCases {
			if c.String() == value {
				return Feature{Class: FeatCase, Case: c}, value, nil
			}
		}
	case "number":
		for _, n := range []Number{NumberDual, NumberTrial, NumberPlural} {
			if n.String() == value {
				return Feature{Class: FeatNumber, Number: n}, value, nil
			}
		}
	case "tense":
		for t := TensePresent; t <= ParticiplePassive; t++ {
			if t.String() == value {
				return Feature{Class: FeatTenseAspect, Tense: t}, value, nil
			}
		}
	case "affect":
		for _, a := range []Affect{AffectPositive, AffectNegative, AffectFormal, AffectInferential} {
			if a.String() == value {
				return Feature{Class: FeatAffect, Affect: a}, value, nil
			}
		}
	case "derivation":
		for _, d := range []Derivation{DerivationReflexive, DerivationCausative} {
			if d.String() == value {
				return Feature{Class: FeatDerivation, Derivation: d}, value, nil
			}
		}
	case "attrib":
		switch value {
		case "follows":
			return Feature{Class: FeatAttributive, Attrib: AttribNounFollows}, "attributive (noun follows)", nil
		case "precedes":
			return Feature{Class: FeatAttributive, Attrib: AttribNounPrecedes}, "attributive (noun precedes)", nil
		}
	case "adp":
		return Feature{Class: FeatAdposition, Adposition: value}, value, nil
	}
	return Feature{}, "", fmt.Errorf("unknown feature %q", s)
}

func parseCond(s string) (phonoCond, error) {
	switch strings.TrimSpace(s) {
	case "any", "":
		return condAny, nil
	case "vowel":
		return condVowel, nil
	case "consonant":
		return condConsonant, nil
	case "voweldiph":
		return condVowelOrDiphthong, nil
	case "diphthong":
		return condDiphthong, nil
	case "notvowel":
		return condNotVowel, nil
	case "vowelnotou":
		return condVowelNotOU, nil
	case "consorou":
		return condConsOrOU, nil
	default:
		return condAny, fmt.Errorf("unknown condition %q", s)
	}
}

// LoadLexicon reads a dictionary file into an in-memory lexicon. Lines are
//
//	root|pos|gloss|frequency[|flags]
//
// where flags are "vtr" for transitive verbs or a particle subtype
// (vocative, question, conjunction). "!" starts a comment.
func LoadLexicon(path string) (*MapLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon %s: %w", path, err)
	}
	defer f.Close()

	lex := NewMapLexicon()
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			return nil, fmt.Errorf("lexicon %s:%d: want at least 3 fields", path, lineNo)
		}
		e := Entry{
			Root:  strings.ToLower(strings.TrimSpace(parts[0])),
			POS:   parsePOS(strings.TrimSpace(parts[1])),
			Gloss: strings.TrimSpace(parts[2]),
		}
		if e.POS == POSUnknown {
			return nil, fmt.Errorf("lexicon %s:%d: unknown part of speech %q", path, lineNo, parts[1])
		}
		if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
			freq, err := strconv.Atoi(strings.TrimSpace(parts[3]))
			if err != nil {
				return nil, fmt.Errorf("lexicon %s:%d: bad frequency: %v", path, lineNo, err)
			}
			e.Frequency = freq
		}
		if len(parts) > 4 {
			switch flag := strings.TrimSpace(parts[4]); flag {
			case "":
			case "vtr":
				e.Transitive = true
			default:
				e.Subtype = flag
			}
		}
		lex.Add(e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return lex, nil
}

// LoadDataDir loads the grammar and lexicon from their conventional file
// names under dataDir.
func LoadDataDir(dataDir string) (*Grammar, *MapLexicon, error) {
	g, err := LoadGrammar(filepath.Join(dataDir, "morphemes.nvi"))
	if err != nil {
		return nil, nil, err
	}
	lex, err := LoadLexicon(filepath.Join(dataDir, "lexicon.nvi"))
	if err != nil {
		return nil, nil, err
	}
	return g, lex, nil
}
