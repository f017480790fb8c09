package speech

import "strings"

// ControlToken separates the natural-language instruction from the text to
// be spoken. The synthesis model treats everything before it as direction,
// everything after it as payload.
const ControlToken = "<|endofprompt|>"

// BuildInput composes the model input for a request: an instruction
// describing the requested emotion and, if set, dialect, then the control
// token, then the sentence itself. Without emotion or dialect the text is
// sent bare.
func BuildInput(req Request) string {
	if req.Emotion == "" && req.Dialect == "" {
		return req.Text
	}

	var b strings.Builder
	b.WriteString("请用")
	switch {
	case req.Emotion != "" && req.Dialect != "":
		b.WriteString(req.Emotion)
		b.WriteString("的情感、")
		b.WriteString(req.Dialect)
	case req.Emotion != "":
		b.WriteString(req.Emotion)
		b.WriteString("的情感")
	default:
		b.WriteString(req.Dialect)
	}
	b.WriteString("朗读这段话")
	b.WriteString(ControlToken)
	b.WriteString(req.Text)
	return b.String()
}
