package model

// Warning is a single lint rule violation.
type Warning struct {
	RuleName string `json:"ruleName"`
	Message  string `json:"message"`
	Pointer  string `json:"pointer"`
}

// Verdict is the combined result of one validation pass over a schema.
type Verdict struct {
	Valid    bool      `json:"valid"`
	Warnings []Warning `json:"warnings"`
	// Context holds the JSON pointers the engine was looking at when it
	// reached its verdict.
	Context []string `json:"context,omitempty"`
}
