package recipes

import (
	"fmt"
	"os"

	"github.com/DakshC17/reciperecommendation/llm"
	"github.com/DakshC17/reciperecommendation/llm/groq"
	"github.com/DakshC17/reciperecommendation/llm/openai"
)

// NewLLMClientFromEnv creates an LLM client from environment variables.
// Groq is preferred when GROQ_API_KEY is set; OPENAI_API_KEY is the
// fallback. Model names can be overridden with GROQ_MODEL / OPENAI_MODEL.
func NewLLMClientFromEnv() (llm.Client, error) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return groq.New(key, os.Getenv("GROQ_MODEL")), nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return openai.New(key, os.Getenv("OPENAI_MODEL")), nil
	}
	return nil, fmt.Errorf("no LLM API key found (set GROQ_API_KEY or OPENAI_API_KEY)")
}
