package usecases

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"bizbot/internal/entities"
)

// synthPhrases are the templates used to generate training phrases for every
// (industry, intent) pair declared in configuration, on top of the fixed
// phrase bank of the common intents.
var synthPhrases = []string{
	"i want %s",
	"i need %s",
	"quiero %s",
	"necesito %s",
	"informacion sobre %s",
}

type bayesClass struct {
	label       string
	tokenCounts map[string]int
	totalTokens int
	docs        int
}

// IntentClassifier is the two-tier classifier: a naive-Bayes model trained
// once at startup, then per-industry regex patterns. Read-only after Train;
// safe for concurrent use.
type IntentClassifier struct {
	classes   []*bayesClass
	vocab     map[string]struct{}
	totalDocs int

	// industry -> ordered (intent, compiled patterns)
	industryPatterns map[string][]industryIntent
	logger           *zap.Logger
	trained          bool
}

type industryIntent struct {
	name     string
	patterns []*regexp.Regexp
}

func NewIntentClassifier(logger *zap.Logger) *IntentClassifier {
	return &IntentClassifier{
		vocab:            make(map[string]struct{}),
		industryPatterns: make(map[string][]industryIntent),
		logger:           logger,
	}
}

// Train builds the model from the config resource. Called exactly once
// before the engine accepts traffic; retraining at runtime is not supported
// (config changes require a restart).
func (c *IntentClassifier) Train(cfg *EngineConfig) error {
	if c.trained {
		return fmt.Errorf("classifier already trained")
	}

	byLabel := make(map[string]*bayesClass)
	addDoc := func(label, phrase string) {
		cls, ok := byLabel[label]
		if !ok {
			cls = &bayesClass{label: label, tokenCounts: make(map[string]int)}
			byLabel[label] = cls
			c.classes = append(c.classes, cls)
		}
		cls.docs++
		c.totalDocs++
		for _, tok := range Tokenize(phrase) {
			stem := Stem(tok)
			cls.tokenCounts[stem]++
			cls.totalTokens++
			c.vocab[stem] = struct{}{}
		}
	}

	for _, ci := range cfg.CommonIntents {
		for _, phrase := range ci.Phrases {
			addDoc(ci.Name, phrase)
		}
	}

	for industry, ind := range cfg.Industries {
		for _, intent := range ind.Intents {
			// "product_inquiry" trains as "product inquiry"
			spoken := strings.ReplaceAll(intent.Name, "_", " ")
			for _, tmpl := range synthPhrases {
				addDoc(intent.Name, fmt.Sprintf(tmpl, spoken))
			}

			compiled := make([]*regexp.Regexp, 0, len(intent.Patterns))
			for _, p := range intent.Patterns {
				re, err := regexp.Compile("(?i)" + p)
				if err != nil {
					return fmt.Errorf("industry %s intent %s: bad pattern %q: %w", industry, intent.Name, p, err)
				}
				compiled = append(compiled, re)
			}
			c.industryPatterns[industry] = append(c.industryPatterns[industry], industryIntent{
				name:     intent.Name,
				patterns: compiled,
			})
		}
	}

	c.trained = true
	c.logger.Info("intent classifier trained",
		zap.Int("classes", len(c.classes)),
		zap.Int("vocabulary", len(c.vocab)),
		zap.Int("documents", c.totalDocs))
	return nil
}

// VocabularySize reports the trained vocabulary size (ops visibility).
func (c *IntentClassifier) VocabularySize() int {
	return len(c.vocab)
}

// Classify runs the trained model first; common intents win over industry
// patterns. Falls through to the industry's regex patterns in declaration
// order, then to IntentUnknown. Always returns a label.
func (c *IntentClassifier) Classify(text, industry string) entities.ClassificationResult {
	if intent := c.classifyBayes(text); intent != entities.IntentUnknown {
		return entities.ClassificationResult{Intent: intent, Tier: "common"}
	}

	for _, ii := range c.industryPatterns[industry] {
		for _, re := range ii.patterns {
			if re.MatchString(text) {
				return entities.ClassificationResult{Intent: ii.name, Tier: "industry"}
			}
		}
	}

	return entities.ClassificationResult{Intent: entities.IntentUnknown, Tier: "none"}
}

// classifyBayes scores every class with multinomial naive Bayes (Laplace
// smoothed). Messages with no trained token at all return the unknown
// sentinel instead of whatever class the priors would favor.
func (c *IntentClassifier) classifyBayes(text string) string {
	tokens := Tokenize(text)
	known := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		stem := Stem(tok)
		if _, ok := c.vocab[stem]; ok {
			known = append(known, stem)
		}
	}
	if len(known) == 0 {
		return entities.IntentUnknown
	}

	vocabSize := float64(len(c.vocab))
	best := entities.IntentUnknown
	bestScore := math.Inf(-1)
	for _, cls := range c.classes {
		score := math.Log(float64(cls.docs) / float64(c.totalDocs))
		for _, stem := range known {
			p := (float64(cls.tokenCounts[stem]) + 1) / (float64(cls.totalTokens) + vocabSize)
			score += math.Log(p)
		}
		if score > bestScore {
			bestScore = score
			best = cls.label
		}
	}
	return best
}
