package fallback

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
)

// DefaultResponse is returned when no rule matches. It is distinct from
// every rule's response on purpose.
const DefaultResponse = "That's interesting! While I'm still indexing some details, I can tell you all about Dilpreet's Python work, his Top 30 Hackathon achievement, or his AI projects like Jarvis. Try asking about those!"

// DefaultRules is the built-in knowledge table. Declaration order matters:
// earlier rules win ties.
func DefaultRules() []domain.IntentRule {
	return []domain.IntentRule{
		{
			Keywords: []string{"hackathon", "top 30", "silent coders"},
			Response: `Dilpreet recently competed in the "Prompt The Future" Hackathon at GGI. His team, "Silent Coders", placed in the Top 30! They built a system that translates text/speech into sign language using AI and 3D avatars.`,
		},
		{
			Keywords: []string{"skills", "tech", "know"},
			Response: "Dilpreet is a specialist in Python and AIML. His stack includes TensorFlow, OpenAI API, React, and Linux. He's also strong in DSA and graphic design.",
		},
		{
			Keywords: []string{"jarvis"},
			Response: "Jarvis is one of his favorite projects! It's a voice-controlled assistant built in Python that uses OpenAI's logic to handle tasks and conversations.",
		},
		{
			Keywords: []string{"contact", "email", "hire"},
			Response: "You can reach Dilpreet directly at dilpreetsinghverma@gmail.com or find him on GitHub. He's currently open to new opportunities!",
		},
		{
			Keywords: []string{"who", "about"},
			Response: "Dilpreet Singh is an AIML Specialist and Python Developer currently studying at GGI. He focuses on building high-impact AI solutions, like his recent work on sign language translation.",
		},
		{
			Keywords: []string{"hello", "hi"},
			Response: "Hi there! Hope you're enjoying the portfolio. What would you like to know about Dilpreet's work?",
		},
	}
}

type ruleFile struct {
	Fallback string              `yaml:"fallback"`
	Rules    []domain.IntentRule `yaml:"rules"`
}

// Load reads an externalized YAML rule table so content edits never touch
// the matching logic. An empty path returns the built-in table.
func Load(path string) (*Matcher, error) {
	if path == "" {
		return NewDefault(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	if rf.Fallback == "" {
		rf.Fallback = DefaultResponse
	}

	return New(rf.Rules, rf.Fallback), nil
}
