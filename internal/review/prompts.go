package review

const transcriptionPrompt = "You are a precise slide reader. Read the provided slide text and attached images. " +
	"Return STRICT JSON exactly in this shape: {\"slide_text\": \"<transcribed/combined text>\"}. " +
	"Preserve numbers, units, and short claims exactly. Do not add other keys."

const consistencyPrompt = "You are an expert fact and consistency checker for slide decks.\n" +
	"Identify:\n" +
	"1) Intra-slide errors (contradictions, impossible numbers)\n" +
	"2) Cross-slide inconsistencies (same metric different values, unit mismatches, timeline conflicts)\n" +
	"3) Always return at least 1 suggestion even if no issues.\n" +
	"Return ONLY valid JSON in this schema:\n" +
	"{ \"issues\": [{\"slides\": [1,2], \"description\": \"...\", \"suggestion\": \"...\"}], " +
	"\"suggestions\": [\"...\"] }"

// Suggestions used when the consistency check cannot produce a result.
const (
	SuggestionUnreachable = "Could not reach the model API to perform automated checks. Please review slides manually."
	SuggestionNoOutput    = "No output from the model while comparing slides."
	SuggestionUnparsed    = "Review all numerical values and ensure consistency across slides."
)
