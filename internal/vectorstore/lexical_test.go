package vectorstore

import (
	"math"
	"strings"
	"testing"
)

func TestLexicalScoreBasicMatch(t *testing.T) {
	query := "bandit ambush"
	chunk := "The bandit ambush caught the party off guard. The bandits scattered after the fight."
	score := lexicalScore(query, chunk, "The Ambush")

	if score <= 0 {
		t.Fatalf("expected score to be positive, got %f", score)
	}
	if score > maxLexicalScore {
		t.Fatalf("score should be clamped to maxLexicalScore, got %f", score)
	}
}

func TestLexicalScoreHeadingBonus(t *testing.T) {
	query := "duskhaven"
	chunk := "General narrative without the keyword."
	score := lexicalScore(query, chunk, "Arrival in Duskhaven")

	if math.Abs(float64(score-headingMatchBonus)) > 0.0001 {
		t.Fatalf("expected heading bonus only (%f), got %f", headingMatchBonus, score)
	}
}

func TestLexicalScoreStopwordsRemoved(t *testing.T) {
	query := "the and of"
	chunk := "the and of"
	score := lexicalScore(query, chunk, "")

	if score != 0 {
		t.Fatalf("expected score 0 when query tokens are only stopwords, got %f", score)
	}
}

func TestLexicalScoreNormalization(t *testing.T) {
	query := "kaela"
	chunk := "kaela " + strings.Repeat(" filler", 200)
	score := lexicalScore(query, chunk, "")

	if score <= 0 {
		t.Fatalf("expected normalized score to stay positive, got %f", score)
	}
	if score > maxLexicalScore {
		t.Fatalf("expected score to be clamped to %f, got %f", maxLexicalScore, score)
	}
}

func TestLexicalScoreEmptyInputs(t *testing.T) {
	if score := lexicalScore("", "some text", ""); score != 0 {
		t.Errorf("empty query should score 0, got %f", score)
	}
	if score := lexicalScore("query", "", ""); score != 0 {
		t.Errorf("empty chunk should score 0, got %f", score)
	}
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	tokens := tokenize("Kaela's bow, the [[Duskhaven]] gate!")
	joined := strings.Join(tokens, " ")
	if joined != "kaela s bow the duskhaven gate" {
		t.Fatalf("unexpected tokens: %q", joined)
	}
}
