package llm

import "fmt"

// responseFormat is appended to every review prompt.
const responseFormat = `
Respond with ONLY a JSON object in this exact shape, no prose and no markdown:
{
  "score": <integer 0-100, 100 means no problems>,
  "issues": [
    {
      "severity": "error" | "warning" | "info",
      "text_excerpt": "<exact text from the content>",
      "suggestion": "<replacement or fix>",
      "message": "<one sentence explaining the problem>"
    }
  ]
}
If there are no problems return {"score": 100, "issues": []}.`

const GrammarPrompt = `You are a copy editor reviewing website content written in %s.
Find grammar, punctuation and agreement mistakes. Ignore spelling of brand
names and product terms. Quote each mistake exactly as it appears.

CONTENT:
%s
` + responseFormat

const GrammarDeepPrompt = `You are a senior copy editor reviewing website content written in %s.
Review grammar, punctuation, agreement, tense consistency, parallel
structure, dangling modifiers and awkward phrasing. Quote each problem
exactly as it appears and give a concrete rewrite.

CONTENT:
%s
` + responseFormat

const SEOPrompt = `You are an SEO reviewer. The content is written in %s.
Check for a missing or weak headline, thin content, missing calls to
action and obvious keyword stuffing.

CONTENT:
%s
` + responseFormat

const SEODeepPrompt = `You are a senior SEO consultant. The content is written in %s.
Assess headline and heading structure, keyword focus and density, search
intent match, internal linking opportunities, meta description potential,
duplicate phrasing and calls to action. Explain each issue and suggest a fix.

CONTENT:
%s
` + responseFormat

const ReadabilityPrompt = `You review website content written in %s for readability.
Flag long sentences, passive voice and jargon a general audience would not
understand.

CONTENT:
%s
` + responseFormat

const ReadabilityDeepPrompt = `You are a plain-language specialist reviewing website content written in %s.
Estimate reading level, then flag long or nested sentences, passive voice,
jargon, unclear pronouns, dense paragraphs and inconsistent tone. Suggest a
simpler rewrite for each problem.

CONTENT:
%s
` + responseFormat

// ReviewPrompt renders the prompt for a review check. It returns false for
// checks that have no prompt.
func ReviewPrompt(check, language, content string, deep bool) (string, bool) {
	var tmpl string
	switch check {
	case "grammar":
		tmpl = pick(deep, GrammarDeepPrompt, GrammarPrompt)
	case "seo":
		tmpl = pick(deep, SEODeepPrompt, SEOPrompt)
	case "readability":
		tmpl = pick(deep, ReadabilityDeepPrompt, ReadabilityPrompt)
	default:
		return "", false
	}
	return fmt.Sprintf(tmpl, language, content), true
}

func pick(deep bool, deepPrompt, prompt string) string {
	if deep {
		return deepPrompt
	}
	return prompt
}
